package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port     string
		LogLevel string
	}
	VideoSDK struct {
		APIKey      string
		APISecret   string
		BaseURL     string
		TokenExpMin int
	}
	Agent struct {
		BaseURL     string
		DisplayName string
	}
	Signal struct {
		TokenSecret   string
		TokenSkewSecs int
		TokenExpMin   int
	}
}

func Load() Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("videosdk.base_url", "https://api.videosdk.live/v2")
	v.SetDefault("videosdk.token_exp_min", 240)

	v.SetDefault("agent.base_url", "http://127.0.0.1:8000")
	v.SetDefault("agent.display_name", "AI Translator")

	v.SetDefault("signal.token_skew_secs", 60)
	v.SetDefault("signal.token_exp_min", 720)

	// Map envs
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.log_level", "LOG_LEVEL")

	v.BindEnv("videosdk.api_key", "VIDEOSDK_API_KEY")
	v.BindEnv("videosdk.api_secret", "VIDEOSDK_API_SECRET")
	v.BindEnv("videosdk.base_url", "VIDEOSDK_BASE_URL")
	v.BindEnv("videosdk.token_exp_min", "VIDEOSDK_TOKEN_EXP_MIN")

	v.BindEnv("agent.base_url", "AGENT_BASE_URL")
	v.BindEnv("agent.display_name", "AGENT_DISPLAY_NAME")

	v.BindEnv("signal.token_secret", "SIGNAL_TOKEN_SECRET")
	v.BindEnv("signal.token_skew_secs", "SIGNAL_TOKEN_SKEW_SECS")
	v.BindEnv("signal.token_exp_min", "SIGNAL_TOKEN_EXP_MIN")

	var c Config
	c.Server.Port = toString(v.Get("server.port"))
	c.Server.LogLevel = v.GetString("server.log_level")

	c.VideoSDK.APIKey = v.GetString("videosdk.api_key")
	c.VideoSDK.APISecret = v.GetString("videosdk.api_secret")
	c.VideoSDK.BaseURL = v.GetString("videosdk.base_url")
	c.VideoSDK.TokenExpMin = v.GetInt("videosdk.token_exp_min")

	c.Agent.BaseURL = v.GetString("agent.base_url")
	c.Agent.DisplayName = v.GetString("agent.display_name")

	c.Signal.TokenSecret = v.GetString("signal.token_secret")
	c.Signal.TokenSkewSecs = v.GetInt("signal.token_skew_secs")
	c.Signal.TokenExpMin = v.GetInt("signal.token_exp_min")

	log.Printf("config loaded: port=%s videosdk_base=%s agent_base=%s", c.Server.Port, c.VideoSDK.BaseURL, c.Agent.BaseURL)
	return c
}

func toString(v any) string { return fmt.Sprint(v) }

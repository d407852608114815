package videosdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is the slice of the conferencing REST API this demo consumes.
type Client interface {
	CreateRoom(token string) (string, error)
	ValidateRoom(token, roomID string) error
}

type HTTPClient struct {
	http *http.Client
	base string
}

func NewClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		http: &http.Client{},
		base: baseURL,
	}
}

// CreateRoom creates a room and returns its id. The token is a join JWT
// minted for the API key (see auth.MintRoomToken).
func (c *HTTPClient) CreateRoom(token string) (string, error) {
	var out bytes.Buffer
	if err := json.NewEncoder(&out).Encode(map[string]any{}); err != nil {
		return "", err
	}
	req, err := http.NewRequest("POST", c.base+"/rooms", &out)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("videosdk CreateRoom: %s: %s", resp.Status, string(b))
	}
	var parsed struct {
		RoomID string `json:"roomId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.RoomID == "" {
		return "", fmt.Errorf("videosdk CreateRoom: empty room id")
	}
	return parsed.RoomID, nil
}

// ValidateRoom checks a room id is live before handing it to the UI.
func (c *HTTPClient) ValidateRoom(token, roomID string) error {
	req, err := http.NewRequest("GET", c.base+"/rooms/validate/"+roomID, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("videosdk ValidateRoom: %s: %s", resp.Status, string(b))
	}
	return nil
}

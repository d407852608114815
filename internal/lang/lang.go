package lang

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Detect returns the ISO 639-3 code for a caption snippet plus the
// detector's confidence. Empty or unreliable text comes back as "".
func Detect(text string) (code string, confidence float64) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", 0
	}
	info := whatlanggo.Detect(t)
	if info.Lang < 0 || !info.IsReliable() {
		return "", info.Confidence
	}
	return whatlanggo.LangToString(info.Lang), info.Confidence
}

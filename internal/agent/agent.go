package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Inviter asks the translation backend to join its agent into a meeting.
type Inviter interface {
	Invite(ctx context.Context, meetingID, token string) error
}

type HTTPInviter struct {
	http *http.Client
	base string
}

func NewInviter(baseURL string) *HTTPInviter {
	return &HTTPInviter{
		http: &http.Client{},
		base: baseURL,
	}
}

// Invite posts the meeting credentials to the backend's join endpoint. The
// backend joins asynchronously; a 2xx only means the join was scheduled.
func (c *HTTPInviter) Invite(ctx context.Context, meetingID, token string) error {
	body := map[string]any{
		"meeting_id": meetingID,
		"token":      token,
	}
	var out bytes.Buffer
	if err := json.NewEncoder(&out).Encode(body); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.base+"/join-player", &out)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("agent Invite: %s: %s", resp.Status, string(b))
	}
	return nil
}

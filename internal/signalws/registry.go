package signalws

import (
	"context"
	"encoding/json"
	"sync"

	ws "nhooyr.io/websocket"
)

// Registry keeps at most one signaling connection per meeting.
type Registry struct {
	mu    sync.Mutex
	conns map[string]*ws.Conn
}

func NewRegistry() *Registry { return &Registry{conns: make(map[string]*ws.Conn)} }

// Replace sets the connection for a meeting and closes the previous one if present.
func (r *Registry) Replace(meetingID string, c *ws.Conn) (prevClosed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.conns[meetingID]; ok && old != nil {
		_ = old.Close(ws.StatusNormalClosure, "replaced")
		prevClosed = true
	}
	r.conns[meetingID] = c
	return
}

// RemoveConn drops the meeting's entry only if it still holds c, so the
// cleanup of a replaced handler cannot evict its successor's connection.
func (r *Registry) RemoveConn(meetingID string, c *ws.Conn) (removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[meetingID] != c {
		return false
	}
	delete(r.conns, meetingID)
	return true
}

// SendJSON writes a JSON message to the meeting's connection, if any.
// Used for server-initiated frames such as the agent-invited notification.
func (r *Registry) SendJSON(ctx context.Context, meetingID string, v any) error {
	r.mu.Lock()
	c := r.conns[meetingID]
	r.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Write(ctx, ws.MessageText, mustJSON(v))
}

// local helper
func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

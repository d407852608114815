package signalws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"lingocall/client/internal/auth"
	"lingocall/client/internal/config"
	"lingocall/client/internal/floorctl"
	"lingocall/client/internal/lang"
	"lingocall/client/internal/session"
	"lingocall/client/internal/store"

	ws "nhooyr.io/websocket"
)

// Message is the JSON frame exchanged with the browser page. Inbound frames
// report transport and input events; outbound frames carry commands
// (mic mute/unmute, media attach/play/detach) and roster snapshots.
type Message struct {
	Type          string         `json:"type"`
	TsMs          int64          `json:"ts_ms"`
	MeetingID     string         `json:"meeting_id,omitempty"`
	ParticipantID string         `json:"participant_id,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
}

type Server struct {
	Cfg   config.Config
	Store *store.Store
	Reg   *Registry
}

func NewServer(cfg config.Config, st *store.Store, reg *Registry) *Server {
	return &Server{Cfg: cfg, Store: st, Reg: reg}
}

// client is the per-connection state: one browser page in one meeting.
type client struct {
	meetingID string
	mgr       *session.Manager
	sinks     *sinkTable
	send      sendFunc
	events    session.EventFunc
}

func (s *Server) HandleSignalWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	meetingID := q.Get("meeting_id")
	if meetingID == "" {
		http.Error(w, "missing meeting_id", http.StatusBadRequest)
		return
	}
	if s.Store.GetMeeting(meetingID) == nil {
		http.Error(w, "unknown meeting", http.StatusNotFound)
		return
	}
	// Auth: bearer header or token query param (browser WebSocket API
	// cannot set headers).
	token := q.Get("token")
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		token = strings.TrimPrefix(authz, "Bearer ")
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	if s.Cfg.Signal.TokenSecret == "" {
		http.Error(w, "signal auth not configured", http.StatusUnauthorized)
		return
	}
	if _, _, err := auth.ValidateSignalToken(s.Cfg.Signal.TokenSecret, token, meetingID, time.Now(), s.Cfg.Signal.TokenSkewSecs); err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := ws.Accept(w, r, nil)
	if err != nil {
		log.Printf("ws accept: %v", err)
		return
	}
	replaced := s.Reg.Replace(meetingID, conn)
	if replaced {
		s.Store.AppendEvent(meetingID, "signal_replaced", nil)
	}
	s.Store.AppendEvent(meetingID, "signal_connected", nil)

	ctx := r.Context()
	send := func(msg Message) error {
		msg.MeetingID = meetingID
		wctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return conn.Write(wctx, ws.MessageText, mustJSON(msg))
	}
	events := func(typ string, payload map[string]any) {
		s.Store.AppendEvent(meetingID, typ, payload)
	}
	c := &client{
		meetingID: meetingID,
		sinks:     newSinkTable(send),
		send:      send,
		events:    events,
	}
	c.mgr = session.NewManager(floorctl.NewBus(), c.sinks, &micCommands{send: send}, events)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		if typ != ws.MessageText && typ != ws.MessageBinary {
			continue
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.Store.AppendEvent(meetingID, "signal_msg_invalid", map[string]any{"error": err.Error()})
			continue
		}
		s.handleMessage(c, msg)
	}

	// All session-scoped resources go with the connection: push-to-talk
	// mutes if engaged, bindings release, subscriptions drop.
	c.mgr.Close()
	_ = conn.Close(ws.StatusNormalClosure, "done")
	s.Reg.RemoveConn(meetingID, conn)
	s.Store.AppendEvent(meetingID, "signal_disconnected", nil)
}

// handleMessage routes one inbound frame into the session layer.
func (s *Server) handleMessage(c *client, msg Message) {
	switch msg.Type {
	case "participant_joined":
		name, _ := msg.Payload["display_name"].(string)
		isLocal, _ := msg.Payload["is_local"].(bool)
		c.mgr.AddParticipant(msg.ParticipantID, name, isLocal)

	case "participant_left":
		c.mgr.RemoveParticipant(msg.ParticipantID)

	case "name_changed":
		// Rendered name only; the role from join time stands.
		if ctrl := c.mgr.Get(msg.ParticipantID); ctrl != nil {
			name, _ := msg.Payload["display_name"].(string)
			ctrl.UpdateDisplayName(name)
		}

	case "stream_changed":
		ctrl := c.mgr.Get(msg.ParticipantID)
		if ctrl == nil {
			return
		}
		kind, _ := msg.Payload["kind"].(string)
		trackID, _ := msg.Payload["track_id"].(string)
		enabled, _ := msg.Payload["enabled"].(bool)
		if trackID == "" {
			ctrl.SetTrack(kind, nil, enabled)
		} else {
			ctrl.SetTrack(kind, &wireTrack{id: trackID, kind: kind}, enabled)
		}

	case "active_speaker":
		if ctrl := c.mgr.Get(msg.ParticipantID); ctrl != nil {
			speaking, _ := msg.Payload["speaking"].(bool)
			ctrl.SetActiveSpeaker(speaking)
		}

	case "input":
		kind, _ := msg.Payload["kind"].(string)
		key, _ := msg.Payload["key"].(string)
		c.mgr.HandleInput(kind, key)

	case "play_result":
		kind, _ := msg.Payload["kind"].(string)
		ok, _ := msg.Payload["ok"].(bool)
		errText, _ := msg.Payload["error"].(string)
		c.sinks.sink(msg.ParticipantID, kind).deliverPlayResult(ok, errText)
		// The binder reports failures itself; nothing more to do here.
		return

	case "caption":
		text, _ := msg.Payload["text"].(string)
		code, conf := lang.Detect(text)
		c.events("caption", map[string]any{
			"participant_id": msg.ParticipantID,
			"text":           text,
			"lang":           code,
			"confidence":     conf,
		})
		return

	default:
		c.events("signal_msg_unknown", map[string]any{"type": msg.Type})
		return
	}

	// Push a fresh roster snapshot after any state-changing frame so the
	// page can redraw speaking and hold-to-talk affordances.
	_ = c.send(Message{
		Type:    "roster",
		TsMs:    time.Now().UnixMilli(),
		Payload: map[string]any{"participants": c.mgr.Snapshot()},
	})
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"lingocall/client/internal/agent"
	"lingocall/client/internal/auth"
	"lingocall/client/internal/config"
	"lingocall/client/internal/signalws"
	"lingocall/client/internal/store"
	"lingocall/client/internal/types"
	"lingocall/client/internal/videosdk"
)

type Handlers struct {
	cfg     config.Config
	store   *store.Store
	sdk     videosdk.Client
	inviter agent.Inviter
	signals *signalws.Registry
}

func NewHandlers(cfg config.Config, st *store.Store, sdk videosdk.Client, inv agent.Inviter, reg *signalws.Registry) *Handlers {
	return &Handlers{cfg: cfg, store: st, sdk: sdk, inviter: inv, signals: reg}
}

func (h *Handlers) HandleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	if h.cfg.VideoSDK.APIKey == "" || h.cfg.VideoSDK.APISecret == "" {
		http.Error(w, "missing VideoSDK configuration", http.StatusBadRequest)
		return
	}
	id := uuid.New().String()

	// Room-scoped join token for the conferencing service
	ttl := time.Duration(h.cfg.VideoSDK.TokenExpMin) * time.Minute
	apiToken, err := auth.MintRoomToken(h.cfg.VideoSDK.APIKey, h.cfg.VideoSDK.APISecret, "", ttl, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	roomID, err := h.sdk.CreateRoom(apiToken)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	joinToken, err := auth.MintRoomToken(h.cfg.VideoSDK.APIKey, h.cfg.VideoSDK.APISecret, roomID, ttl, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	signalExp := time.Now().Add(time.Duration(h.cfg.Signal.TokenExpMin) * time.Minute).Unix()
	signalToken := auth.GenerateSignalToken(h.cfg.Signal.TokenSecret, id, signalExp)

	m := &types.Meeting{
		ID:        id,
		RoomID:    roomID,
		RoomURL:   "https://app.videosdk.live/rooms/" + roomID,
		JoinToken: joinToken,
		CreatedAt: time.Now().UTC(),
		Status:    "created",
	}
	_ = h.store.CreateMeeting(m)
	h.store.AppendEvent(id, "meeting_created", map[string]any{"room_id": roomID})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"meeting_id":   id,
		"room_id":      roomID,
		"room_url":     m.RoomURL,
		"join_token":   joinToken,
		"signal_token": signalToken,
	})
}

func (h *Handlers) HandleGetMeeting(w http.ResponseWriter, r *http.Request, id string) {
	m := h.store.GetMeeting(id)
	if m == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}

// HandleInviteAgent asks the translation backend to join its agent into the
// meeting. Fire-and-forget: the HTTP response only confirms the invite was
// dispatched, the join itself happens in the background and its outcome
// lands in the event log.
func (h *Handlers) HandleInviteAgent(w http.ResponseWriter, r *http.Request, id string) {
	m := h.store.GetMeeting(id)
	if m == nil {
		http.NotFound(w, r)
		return
	}
	if m.AgentInvitedAt != nil {
		h.store.AppendEvent(id, "agent_invite_requested", map[string]any{"noop": true})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "invited": true})
		return
	}
	h.store.AppendEvent(id, "agent_invite_requested", nil)

	// Confirm the room is still live before dispatching; inviting the agent
	// into an expired room would only fail later and out of band.
	ttl := time.Duration(h.cfg.VideoSDK.TokenExpMin) * time.Minute
	apiToken, err := auth.MintRoomToken(h.cfg.VideoSDK.APIKey, h.cfg.VideoSDK.APISecret, "", ttl, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := h.sdk.ValidateRoom(apiToken, m.RoomID); err != nil {
		h.store.AppendEvent(id, "room_validate_failed", map[string]any{"error": err.Error()})
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.store.SetAgentInvited(id, h.cfg.Agent.DisplayName, time.Now().UTC())

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.inviter.Invite(ctx, m.RoomID, m.JoinToken); err != nil {
			// Drop the marker so a later invite attempt is not refused.
			h.store.ClearAgentInvited(id)
			h.store.AppendEvent(id, "agent_invite_failed", map[string]any{"error": err.Error()})
			return
		}
		h.store.AppendEvent(id, "agent_invited", map[string]any{"agent_name": h.cfg.Agent.DisplayName})
		// Nudge the page over the signal channel, if one is connected.
		_ = h.signals.SendJSON(ctx, id, signalws.Message{
			Type:      "agent_invited",
			TsMs:      time.Now().UnixMilli(),
			MeetingID: id,
			Payload:   map[string]any{"agent_name": h.cfg.Agent.DisplayName},
		})
	}()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "invited": true})
}

func (h *Handlers) HandleListEvents(w http.ResponseWriter, r *http.Request, id string) {
	m := h.store.GetMeeting(id)
	if m == nil {
		http.NotFound(w, r)
		return
	}
	events := h.store.ListEvents(id)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"meeting_id": id,
		"events":     events,
	})
}

package types

import "time"

type Event struct {
	Type    string         `json:"type"`
	Ts      time.Time      `json:"timestamp"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Meeting struct {
	ID        string    `json:"meeting_id"`
	RoomID    string    `json:"room_id"`
	RoomURL   string    `json:"room_url"`
	JoinToken string    `json:"join_token"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`

	AgentName      string     `json:"agent_name,omitempty"`
	AgentInvitedAt *time.Time `json:"agent_invited_at,omitempty"`
}

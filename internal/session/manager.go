package session

import (
	"sort"
	"sync"

	"lingocall/client/internal/classify"
	"lingocall/client/internal/floorctl"
	"lingocall/client/internal/ptt"
)

// ParticipantState is the per-session snapshot exposed to the UI.
type ParticipantState struct {
	ID          string         `json:"participant_id"`
	DisplayName string         `json:"display_name"`
	Role        classify.Role  `json:"role"`
	IsLocal     bool           `json:"is_local"`
	Speaking    SpeakingStatus `json:"speaking_status"`
	PTT         ptt.State      `json:"ptt_state"`
}

// Manager owns the roster-to-session map for one meeting: exactly one
// controller per live roster entry, created on join and closed on leave.
type Manager struct {
	bus    *floorctl.Bus
	sinks  SinkProvider
	mic    ptt.MicControl
	events EventFunc

	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewManager(bus *floorctl.Bus, sinks SinkProvider, mic ptt.MicControl, events EventFunc) *Manager {
	if events == nil {
		events = func(string, map[string]any) {}
	}
	return &Manager{
		bus:      bus,
		sinks:    sinks,
		mic:      mic,
		events:   events,
		sessions: make(map[string]*Controller),
	}
}

// AddParticipant creates the session for a roster entry. A duplicate join
// for an id that already has a live session returns the existing one.
func (m *Manager) AddParticipant(id, displayName string, isLocal bool) *Controller {
	m.mu.Lock()
	if existing, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		return existing
	}
	c := newController(id, displayName, isLocal, m.bus, m.sinks, m.mic, m.events)
	m.sessions[id] = c
	m.mu.Unlock()

	m.events("session_added", map[string]any{
		"participant_id": id,
		"display_name":   displayName,
		"role":           string(c.Role),
		"is_local":       isLocal,
	})
	return c
}

// RemoveParticipant closes and drops the session for a departed entry.
func (m *Manager) RemoveParticipant(id string) {
	m.mu.Lock()
	c, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	c.Close()
	m.events("session_removed", map[string]any{"participant_id": id})
}

// Get returns the live session for id, or nil.
func (m *Manager) Get(id string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// HandleInput fans a local input event out to local human sessions; every
// other session ignores it.
func (m *Manager) HandleInput(kind, key string) {
	for _, c := range m.snapshot() {
		if c.IsLocal {
			c.HandleInput(kind, key)
		}
	}
}

// Snapshot returns the UI-facing state of every live session, ordered by
// participant id for stable rendering.
func (m *Manager) Snapshot() []ParticipantState {
	ctrls := m.snapshot()
	out := make([]ParticipantState, 0, len(ctrls))
	for _, c := range ctrls {
		out = append(out, ParticipantState{
			ID:          c.ID,
			DisplayName: c.DisplayName(),
			Role:        c.Role,
			IsLocal:     c.IsLocal,
			Speaking:    c.SpeakingStatus(),
			PTT:         c.PTTState(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Close tears down every session, e.g. when the signaling feed drops.
func (m *Manager) Close() {
	m.mu.Lock()
	ctrls := make([]*Controller, 0, len(m.sessions))
	for _, c := range m.sessions {
		ctrls = append(ctrls, c)
	}
	m.sessions = make(map[string]*Controller)
	m.mu.Unlock()

	for _, c := range ctrls {
		c.Close()
	}
}

func (m *Manager) snapshot() []*Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Controller, 0, len(m.sessions))
	for _, c := range m.sessions {
		out = append(out, c)
	}
	return out
}

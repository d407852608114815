package store

import (
	"errors"
	"sync"
	"time"

	"lingocall/client/internal/types"
)

var ErrMeetingExists = errors.New("meeting already exists")

type Store struct {
	mu       sync.RWMutex
	meetings map[string]*types.Meeting
	events   map[string][]types.Event
}

func New() *Store {
	return &Store{
		meetings: make(map[string]*types.Meeting),
		events:   make(map[string][]types.Event),
	}
}

func (s *Store) CreateMeeting(m *types.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meetings[m.ID]; ok {
		return ErrMeetingExists
	}
	s.meetings[m.ID] = m
	s.events[m.ID] = []types.Event{}
	return nil
}

func (s *Store) GetMeeting(id string) *types.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meetings[id]
}

func (s *Store) SetAgentInvited(meetingID, agentName string, at time.Time) {
	s.mu.Lock()
	if m, ok := s.meetings[meetingID]; ok {
		m.AgentName = agentName
		m.AgentInvitedAt = &at
	}
	s.mu.Unlock()
}

// ClearAgentInvited undoes the invite marker, e.g. after a failed
// dispatch, so a later invite is not refused as a no-op.
func (s *Store) ClearAgentInvited(meetingID string) {
	s.mu.Lock()
	if m, ok := s.meetings[meetingID]; ok {
		m.AgentName = ""
		m.AgentInvitedAt = nil
	}
	s.mu.Unlock()
}

func (s *Store) AppendEvent(meetingID, typ string, payload map[string]any) types.Event {
	evt := types.Event{Type: typ, Ts: time.Now().UTC(), Payload: payload}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[meetingID] = append(s.events[meetingID], evt)
	// Cap total events per meeting to avoid unbounded growth
	const maxEvents = 200
	if l := len(s.events[meetingID]); l > maxEvents {
		// Keep space for a single truncation warning so the total stays at maxEvents
		keep := maxEvents - 1
		dropped := l - keep
		s.events[meetingID] = append([]types.Event(nil), s.events[meetingID][l-keep:]...)
		warn := types.Event{Type: "events_truncated", Ts: time.Now().UTC(), Payload: map[string]any{"meeting_id": meetingID, "dropped": dropped, "kept": keep}}
		s.events[meetingID] = append(s.events[meetingID], warn)
	}
	return evt
}

func (s *Store) ListEvents(meetingID string) []types.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.events[meetingID]
	out := make([]types.Event, len(src))
	copy(out, src)
	return out
}

func (s *Store) ListMeetingIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.meetings))
	for id := range s.meetings {
		out = append(out, id)
	}
	return out
}

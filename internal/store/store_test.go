package store

import (
	"testing"
	"time"

	"lingocall/client/internal/types"
)

func TestCreateAndGetMeeting(t *testing.T) {
	st := New()
	m := &types.Meeting{ID: "abc123", CreatedAt: time.Now()}
	if err := st.CreateMeeting(m); err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	got := st.GetMeeting("abc123")
	if got == nil || got.ID != m.ID {
		t.Fatalf("expected meeting %q, got %#v", m.ID, got)
	}
	if err := st.CreateMeeting(m); err != ErrMeetingExists {
		t.Fatalf("expected ErrMeetingExists, got %v", err)
	}
}

func TestEventCapTruncates(t *testing.T) {
	st := New()
	_ = st.CreateMeeting(&types.Meeting{ID: "m1", CreatedAt: time.Now()})

	for i := 0; i < 250; i++ {
		st.AppendEvent("m1", "tick", nil)
	}

	evts := st.ListEvents("m1")
	if len(evts) != 200 {
		t.Fatalf("expected capped log of 200 events, got %d", len(evts))
	}
	if evts[len(evts)-1].Type != "events_truncated" {
		t.Fatalf("expected trailing truncation marker, got %q", evts[len(evts)-1].Type)
	}
}

func TestSetAgentInvited(t *testing.T) {
	st := New()
	_ = st.CreateMeeting(&types.Meeting{ID: "m1", CreatedAt: time.Now()})

	at := time.Now().UTC()
	st.SetAgentInvited("m1", "AI Translator", at)

	m := st.GetMeeting("m1")
	if m.AgentName != "AI Translator" || m.AgentInvitedAt == nil {
		t.Fatalf("agent invite not recorded: %#v", m)
	}

	st.ClearAgentInvited("m1")
	m = st.GetMeeting("m1")
	if m.AgentName != "" || m.AgentInvitedAt != nil {
		t.Fatalf("agent invite not cleared: %#v", m)
	}
}

package ptt

import (
	"sync"
	"testing"
)

type countingMic struct {
	mu      sync.Mutex
	mutes   int
	unmutes int
}

func (m *countingMic) MuteLocalMic() {
	m.mu.Lock()
	m.mutes++
	m.mu.Unlock()
}

func (m *countingMic) UnmuteLocalMic() {
	m.mu.Lock()
	m.unmutes++
	m.mu.Unlock()
}

func TestAcquireRelease(t *testing.T) {
	mic := &countingMic{}
	c := New(mic, nil)

	c.Acquire()
	if c.State() != StateEngaged {
		t.Fatalf("expected engaged after acquire, got %s", c.State())
	}
	if mic.unmutes != 1 {
		t.Fatalf("expected 1 unmute, got %d", mic.unmutes)
	}

	c.Release()
	if c.State() != StateIdle {
		t.Fatalf("expected idle after release, got %s", c.State())
	}
	if mic.mutes != 1 {
		t.Fatalf("expected 1 mute, got %d", mic.mutes)
	}
}

func TestKeyRepeatSuppressed(t *testing.T) {
	mic := &countingMic{}
	c := New(mic, nil)

	c.Acquire()
	c.Acquire()
	c.Acquire()

	if mic.unmutes != 1 {
		t.Fatalf("repeated acquires must not re-unmute, got %d unmutes", mic.unmutes)
	}
}

func TestReleaseWhileIdleIsNoop(t *testing.T) {
	mic := &countingMic{}
	c := New(mic, nil)

	c.Release()
	if mic.mutes != 0 {
		t.Fatalf("release while idle must not mute, got %d mutes", mic.mutes)
	}
}

func TestForceReleaseMutesOnce(t *testing.T) {
	mic := &countingMic{}
	var reasons []string
	c := New(mic, func(engaged bool, reason string) {
		if !engaged {
			reasons = append(reasons, reason)
		}
	})

	c.Acquire()
	c.ForceRelease()

	if c.State() != StateIdle {
		t.Fatalf("expected idle after force release, got %s", c.State())
	}
	if mic.mutes != 1 {
		t.Fatalf("expected exactly 1 mute, got %d", mic.mutes)
	}
	if len(reasons) != 1 || reasons[0] != ReasonForced {
		t.Fatalf("expected forced release reason, got %v", reasons)
	}
}

func TestCloseWhileEngagedMutesOnce(t *testing.T) {
	mic := &countingMic{}
	c := New(mic, nil)

	c.Acquire()
	c.Close()

	if mic.mutes != 1 {
		t.Fatalf("teardown while engaged must mute exactly once, got %d", mic.mutes)
	}

	// Closed controller ignores further input.
	c.Acquire()
	if mic.unmutes != 1 {
		t.Fatalf("closed controller must ignore acquire, got %d unmutes", mic.unmutes)
	}
}

func TestPointerLeaveBehavesLikePointerUp(t *testing.T) {
	mic := &countingMic{}
	c := New(mic, nil)

	c.HandleInput("pointerdown", "")
	c.HandleInput("pointerleave", "")
	if c.State() != StateIdle || mic.mutes != 1 {
		t.Fatalf("pointerleave while engaged must release: state=%s mutes=%d", c.State(), mic.mutes)
	}

	// pointerleave while idle stays a no-op
	c.HandleInput("pointerleave", "")
	if mic.mutes != 1 {
		t.Fatalf("pointerleave while idle must not mute again, got %d", mic.mutes)
	}
}

func TestSpaceKeyMapping(t *testing.T) {
	mic := &countingMic{}
	c := New(mic, nil)

	c.HandleInput("keydown", "KeyA")
	if c.State() != StateIdle {
		t.Fatal("non-space keydown must be ignored")
	}

	c.HandleInput("keydown", "Space")
	c.HandleInput("keydown", "Space") // key repeat
	if mic.unmutes != 1 {
		t.Fatalf("expected 1 unmute, got %d", mic.unmutes)
	}

	c.HandleInput("keyup", "Space")
	if c.State() != StateIdle || mic.mutes != 1 {
		t.Fatalf("expected idle with 1 mute, got state=%s mutes=%d", c.State(), mic.mutes)
	}
}

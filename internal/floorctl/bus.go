package floorctl

import "sync"

// Bus carries the speaking status of translator sessions, keyed by
// participant id. Last-value-only: subscribers see the latest value per
// participant, there is no history and no queue. Values are immutable
// snapshots, so a reader is never handed partially-updated state.
type Bus struct {
	mu   sync.Mutex
	last map[string]bool
	subs map[int]func(participantID string, speaking bool)
	next int
}

func NewBus() *Bus {
	return &Bus{
		last: make(map[string]bool),
		subs: make(map[int]func(string, bool)),
	}
}

// Publish records the latest speaking status for a participant and notifies
// subscribers. Publishing an unchanged value is a no-op.
func (b *Bus) Publish(participantID string, speaking bool) {
	b.mu.Lock()
	if prev, ok := b.last[participantID]; ok && prev == speaking {
		b.mu.Unlock()
		return
	}
	b.last[participantID] = speaking
	subs := make([]func(string, bool), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(participantID, speaking)
	}
}

// Retract drops a participant's entry, used when its session is torn down.
func (b *Bus) Retract(participantID string) {
	b.mu.Lock()
	delete(b.last, participantID)
	b.mu.Unlock()
}

// Speaker returns the id of any participant currently reported speaking.
// When several are speaking, which one is returned is unspecified.
func (b *Bus) Speaker() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, speaking := range b.last {
		if speaking {
			return id, true
		}
	}
	return "", false
}

// AnySpeaking reports whether any published participant is speaking.
func (b *Bus) AnySpeaking() bool {
	_, ok := b.Speaker()
	return ok
}

// Subscribe registers fn for future publications and returns a cancel
// function scoped to the subscriber's lifetime.
func (b *Bus) Subscribe(fn func(participantID string, speaking bool)) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

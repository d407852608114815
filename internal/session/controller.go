package session

import (
	"sync"

	"lingocall/client/internal/classify"
	"lingocall/client/internal/floorctl"
	"lingocall/client/internal/media"
	"lingocall/client/internal/ptt"
)

// EventFunc appends one entry to the owning meeting's event log.
type EventFunc func(typ string, payload map[string]any)

// SinkProvider hands out the renderable sink for a participant's track of a
// given kind. Implemented by the rendering layer.
type SinkProvider interface {
	SinkFor(participantID, kind string) media.Sink
}

// Controller owns everything the client keeps per rendered participant:
// role, media binders, the push-to-talk machine for the local human, and
// the floor-control subscription. One controller per live roster entry.
type Controller struct {
	ID      string
	IsLocal bool
	Role    classify.Role // derived once at creation, never re-derived

	bus    *floorctl.Bus
	sinks  SinkProvider
	events EventFunc

	ptc   *ptt.Controller // non-nil only for the local human
	coord *floorctl.Coordinator

	mu           sync.Mutex
	displayName  string
	remoteActive bool
	engaged      bool
	lastStatus   SpeakingStatus
	webcam       *media.Binder
	mic          *media.Binder
	closed       bool
}

func newController(id, displayName string, isLocal bool, bus *floorctl.Bus, sinks SinkProvider, micCtl ptt.MicControl, events EventFunc) *Controller {
	c := &Controller{
		ID:          id,
		IsLocal:     isLocal,
		Role:        classify.Classify(displayName),
		displayName: displayName,
		bus:         bus,
		sinks:       sinks,
		events:      events,
		lastStatus:  NotSpeaking,
	}
	if isLocal && c.Role == classify.RoleHuman {
		c.ptc = ptt.New(micCtl, c.onPTTChange)
		c.coord = floorctl.NewCoordinator(bus, c.ptc, func(byID string) {
			c.events("floor_forced_mute", map[string]any{"participant_id": id, "forced_by": byID})
		})
	}
	return c
}

// SetTrack reconciles the participant's track of the given kind ("audio" or
// "video") against the binder for that kind's sink.
func (c *Controller) SetTrack(kind string, t media.Track, enabled bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	b := c.binderLocked(kind)
	c.mu.Unlock()
	if b == nil {
		return
	}
	b.Bind(t, enabled)
}

// SetActiveSpeaker applies the transport-reported active-speaker flag.
func (c *Controller) SetActiveSpeaker(active bool) {
	c.mu.Lock()
	if c.closed || c.remoteActive == active {
		c.mu.Unlock()
		return
	}
	c.remoteActive = active
	c.mu.Unlock()
	c.recompute()
}

// UpdateDisplayName changes the rendered name. The role stays whatever it
// was at creation; a rename never reclassifies.
func (c *Controller) UpdateDisplayName(name string) {
	c.mu.Lock()
	c.displayName = name
	c.mu.Unlock()
}

// HandleInput forwards a raw input event to the push-to-talk machine. Only
// meaningful for the local human; any other session ignores input.
func (c *Controller) HandleInput(kind, key string) {
	if c.ptc == nil {
		return
	}
	c.ptc.HandleInput(kind, key)
	// A translator may already hold the floor; undo the engagement on the
	// same turn rather than waiting for its next publication.
	c.coord.Enforce()
}

// SpeakingStatus derives the current status from both inputs.
func (c *Controller) SpeakingStatus() SpeakingStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CombineSpeaking(c.remoteActive, c.engaged)
}

// PTTState exposes the push-to-talk state for the "hold to talk"
// affordance; idle for any session without a controller.
func (c *Controller) PTTState() ptt.State {
	if c.ptc == nil {
		return ptt.StateIdle
	}
	return c.ptc.State()
}

func (c *Controller) DisplayName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayName
}

// Close tears the session down: push-to-talk first (so a pending mute fires
// before listeners go away), then the floor subscription, then the media
// bindings, then the bus entry.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	webcam, mic := c.webcam, c.mic
	c.mu.Unlock()

	if c.ptc != nil {
		c.ptc.Close()
		c.coord.Close()
	}
	if webcam != nil {
		webcam.Unbind()
	}
	if mic != nil {
		mic.Unbind()
	}
	if c.Role == classify.RoleTranslator {
		c.bus.Publish(c.ID, false)
		c.bus.Retract(c.ID)
	}
}

func (c *Controller) onPTTChange(engaged bool, reason string) {
	c.mu.Lock()
	c.engaged = engaged
	c.mu.Unlock()

	if engaged {
		c.events("ptt_engaged", map[string]any{"participant_id": c.ID})
	} else {
		c.events("ptt_released", map[string]any{"participant_id": c.ID, "reason": reason})
	}
	c.recompute()
}

// recompute re-derives the speaking status and, on a change, publishes it
// for translator sessions and records it in the event log.
func (c *Controller) recompute() {
	c.mu.Lock()
	status := CombineSpeaking(c.remoteActive, c.engaged)
	changed := status != c.lastStatus
	c.lastStatus = status
	c.mu.Unlock()

	if !changed {
		return
	}
	if c.Role == classify.RoleTranslator {
		c.bus.Publish(c.ID, status == Speaking)
	}
	c.events("speaking_changed", map[string]any{
		"participant_id": c.ID,
		"speaking":       status == Speaking,
	})
}

// binderLocked lazily creates the binder for a track kind. Bind failures
// surface as event-log entries, never as errors to the caller.
func (c *Controller) binderLocked(kind string) *media.Binder {
	report := func(err error) {
		c.events("media_bind_failed", map[string]any{
			"participant_id": c.ID,
			"kind":           kind,
			"error":          err.Error(),
		})
	}
	switch kind {
	case "video":
		if c.webcam == nil {
			c.webcam = media.NewBinder(c.sinks.SinkFor(c.ID, kind), report)
		}
		return c.webcam
	case "audio":
		if c.mic == nil {
			c.mic = media.NewBinder(c.sinks.SinkFor(c.ID, kind), report)
		}
		return c.mic
	}
	return nil
}

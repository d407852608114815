package ptt

import "sync"

type State string

const (
	StateIdle    State = "idle"
	StateEngaged State = "engaged"
)

// Release reasons, used for metrics and the event log.
const (
	ReasonUser     = "user"
	ReasonForced   = "forced"
	ReasonTeardown = "teardown"
)

// MicControl is the transport's switch for the local participant's
// microphone. Both calls are idempotent on the transport side; the
// controller still guarantees it never issues redundant ones.
type MicControl interface {
	MuteLocalMic()
	UnmuteLocalMic()
}

// Controller is the push-to-talk state machine for the local human
// participant. All transitions are driven by input events from the
// signaling feed or by the floor coordinator.
type Controller struct {
	mic      MicControl
	onChange func(engaged bool, reason string)

	mu     sync.Mutex
	state  State
	closed bool
}

func New(mic MicControl, onChange func(engaged bool, reason string)) *Controller {
	if onChange == nil {
		onChange = func(bool, string) {}
	}
	return &Controller{mic: mic, onChange: onChange, state: StateIdle}
}

// Acquire handles keydown Space / pointerdown. Repeated acquires while
// already engaged are ignored (key repeat), so unmute fires exactly once
// per engagement.
func (c *Controller) Acquire() {
	c.mu.Lock()
	if c.closed || c.state == StateEngaged {
		c.mu.Unlock()
		return
	}
	c.state = StateEngaged
	c.mu.Unlock()

	c.mic.UnmuteLocalMic()
	metricEngagements.Inc()
	c.onChange(true, ReasonUser)
}

// Release handles keyup Space / pointerup / pointerleave. A release while
// idle is a no-op, which is what makes pointerleave safe to forward
// unconditionally.
func (c *Controller) Release() {
	c.release(ReasonUser)
}

// ForceRelease is the coordinator-driven variant: same transition and mute
// side effect, distinguished only by origin.
func (c *Controller) ForceRelease() {
	c.release(ReasonForced)
}

// Close tears the controller down. If still engaged, the forced release
// fires first so the transport is never left un-muted for a departed
// session. Further transitions are ignored.
func (c *Controller) Close() {
	c.release(ReasonTeardown)
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Controller) release(reason string) {
	c.mu.Lock()
	if c.state != StateEngaged {
		c.mu.Unlock()
		return
	}
	c.state = StateIdle
	c.mu.Unlock()

	c.mic.MuteLocalMic()
	metricReleases.WithLabelValues(reason).Inc()
	c.onChange(false, reason)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Engaged() bool {
	return c.State() == StateEngaged
}

// HandleInput maps a raw input event from the signaling feed onto the FSM.
// Unknown kinds and keys are ignored.
func (c *Controller) HandleInput(kind, key string) {
	switch kind {
	case "keydown":
		if key == "Space" {
			c.Acquire()
		}
	case "keyup":
		if key == "Space" {
			c.Release()
		}
	case "pointerdown":
		c.Acquire()
	case "pointerup", "pointerleave":
		c.Release()
	}
}

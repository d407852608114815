package floorctl

import "lingocall/client/internal/ptt"

// Coordinator enforces the floor-control rule for one local human session:
// while any translator is reported speaking, its push-to-talk controller
// may not remain engaged. This is advisory safety, not hard real-time - a
// short overlap before the forced mute lands is acceptable.
type Coordinator struct {
	bus      *Bus
	ctrl     *ptt.Controller
	onForced func(participantID string)
	cancel   func()
}

// NewCoordinator subscribes the controller to the bus. onForced is invoked
// after a forced release, with the id of the translator that held the floor.
func NewCoordinator(bus *Bus, ctrl *ptt.Controller, onForced func(participantID string)) *Coordinator {
	if onForced == nil {
		onForced = func(string) {}
	}
	c := &Coordinator{bus: bus, ctrl: ctrl, onForced: onForced}
	c.cancel = bus.Subscribe(func(participantID string, speaking bool) {
		if speaking {
			c.force(participantID)
		}
	})
	return c
}

// Enforce re-checks the current bus state. Called after a local acquire so
// an engagement attempted while a translator already holds the floor is
// undone on the same turn, without waiting for a fresh publication.
func (c *Coordinator) Enforce() {
	if id, ok := c.bus.Speaker(); ok {
		c.force(id)
	}
}

// Close detaches the subscription. The controller itself is torn down by
// its owning session.
func (c *Coordinator) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Coordinator) force(participantID string) {
	if !c.ctrl.Engaged() {
		// No engaged controller to release; a valid steady state.
		return
	}
	c.ctrl.ForceRelease()
	metricForcedMutes.Inc()
	c.onForced(participantID)
}

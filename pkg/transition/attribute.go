package transition

import (
	"context"
)

// AttributeCollection specializes Collection for transitions derived from a
// requested-event marker written on the subject object. It clears the marker
// before callbacks run, hands transitions over for deferred after-callback
// execution, and restores the marker when a failed attempt needs to be retried.
type AttributeCollection struct {
	*Collection

	// Original event per transition, captured at construction so rollback can
	// restore the marker the caller wrote.
	events []string
}

// NewAttribute builds an attribute-event collection. Options and validation
// are the same as New.
func NewAttribute(transitions []Transition, opts ...Option) (*AttributeCollection, error) {
	c, err := New(transitions, opts...)
	if err != nil {
		return nil, err
	}

	ac := &AttributeCollection{
		Collection: c,
		events:     make([]string, len(c.transitions)),
	}
	for i, t := range c.transitions {
		ac.events[i] = t.Event()
	}
	c.beforePhase = ac.clearPending
	c.afterPhase = ac.deferAfter
	c.rollbackPhase = ac.restoreEvents
	return ac, nil
}

// clearPending empties both bookkeeping slots so an action that triggers a
// nested evaluation on the same object does not pick up the pending event
// again.
func (c *AttributeCollection) clearPending(_ context.Context) {
	for _, t := range c.transitions {
		m := t.Machine()
		m.SetPendingEvent(t.Object(), "")
		m.SetPendingTransition(t.Object(), nil)
	}
}

// deferAfter stores each transition under its machine's pending-transition
// slot when after callbacks are being skipped on a successful run, so a caller
// can retrieve it and finish after-callback execution out of band.
func (c *AttributeCollection) deferAfter(_ context.Context) {
	if !c.skipAfter || !c.success {
		return
	}
	for _, t := range c.transitions {
		t.Machine().SetPendingTransition(t.Object(), t)
	}
}

// restoreEvents puts each original event marker back so a failed attempt can
// be retried by re-triggering the same event.
func (c *AttributeCollection) restoreEvents(_ context.Context) {
	for i, t := range c.transitions {
		t.Machine().SetPendingEvent(t.Object(), c.events[i])
	}
}

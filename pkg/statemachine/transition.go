package statemachine

import (
	"context"

	"github.com/dmitrymomot/statekit/pkg/transition"
)

// boundTransition ties a resolved transition definition to a concrete record.
// It implements transition.Transition for the execution pipeline: the machine's
// registered callbacks become the before/after hooks, and persistence writes
// the governed attribute on the record.
type boundTransition struct {
	machine *Machine
	record  *Record
	def     transitionDef
	event   Event
}

func (t *boundTransition) Attribute() string { return t.machine.attribute }

func (t *boundTransition) Action() string { return t.machine.action }

func (t *boundTransition) Event() string {
	if t.event == nil {
		return ""
	}
	return t.event.Name()
}

func (t *boundTransition) Machine() transition.Machine { return t.machine }

func (t *boundTransition) Object() transition.Object { return t.record }

// From returns the source state captured when the transition was resolved.
func (t *boundTransition) From() State { return t.def.from }

// To returns the destination state.
func (t *boundTransition) To() State { return t.def.to }

func (t *boundTransition) Before(ctx context.Context) bool {
	for _, cb := range t.machine.before {
		if cb != nil && !cb(ctx, t.record, t.def.from, t.def.to, t.event) {
			return false
		}
	}
	return true
}

func (t *boundTransition) Persist(_ context.Context) {
	t.record.Set(t.machine.attribute, t.def.to.Name())
}

func (t *boundTransition) After(ctx context.Context, result any, success bool) {
	for _, cb := range t.machine.after {
		if cb != nil {
			cb(ctx, t.record, t.def.from, t.def.to, t.event, result, success)
		}
	}
}

func (t *boundTransition) Rollback(_ context.Context) {
	t.record.Set(t.machine.attribute, t.def.from.Name())
}

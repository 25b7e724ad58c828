package transition

import (
	"context"
)

// Transition describes one attribute's proposed change from a source state to a
// destination state, together with the lifecycle hooks a collection drives.
// Transitions are produced upstream, once the applicable change for an event has
// been resolved, and are only mutated through the four hooks below.
type Transition interface {
	// Attribute identifies the state-holding field being changed. Attributes
	// are pairwise distinct within one collection.
	Attribute() string

	// Action identifies the side-effect operation associated with this
	// transition, or "" when there is none.
	Action() string

	// Event is the symbolic event identifier that produced this transition, or
	// "" when the transition was not event-driven.
	Event() string

	// Machine returns the state-machine definition governing the attribute.
	Machine() Machine

	// Object returns the subject whose attribute is transitioning. All
	// transitions in one collection share the same subject.
	Object() Object

	// Before runs the transition's before callbacks. Returning false halts the
	// whole pipeline without it being an error.
	Before(ctx context.Context) bool

	// Persist writes the destination state to the subject's attribute.
	Persist(ctx context.Context)

	// After runs the transition's after callbacks with the transition's own
	// action result (nil when it has no action) and the overall outcome.
	After(ctx context.Context, result any, success bool)

	// Rollback undoes the persisted state change.
	Rollback(ctx context.Context)
}

// Machine exposes the per-attribute bookkeeping slots the attribute-event
// pipeline variant maintains on the subject object: the requested-event marker
// and the slot holding a transition whose after callbacks were deferred.
type Machine interface {
	PendingEvent(obj Object) string
	SetPendingEvent(obj Object, event string)
	PendingTransition(obj Object) Transition
	SetPendingTransition(obj Object, t Transition)
}

// Object is the subject of a collection: it invokes side-effect actions by
// identifier and anchors the transactional scope the pipeline runs in.
type Object interface {
	// Invoke runs the named action and returns its result. A falsy result is
	// an ordinary failure; an error triggers rollback and is propagated
	// unchanged to the Perform caller.
	Invoke(ctx context.Context, action string) (any, error)

	// WithinTransaction runs fn in a transactional scope. The provider commits
	// iff fn returns (true, nil) and rolls back otherwise; fn's error must be
	// returned unchanged.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) (bool, error)) error
}

// BlockFunc replaces action invocation when a collection is performed in block
// mode. Its result is recorded under every referenced action identifier.
type BlockFunc func(ctx context.Context) (any, error)

// Truthy reports whether an action result counts as success: anything except
// nil and false.
func Truthy(v any) bool {
	return v != nil && v != false
}

package statemachine

import (
	"context"
)

// State represents a state in the state machine.
type State interface {
	Name() string
}

// Event represents an event that can trigger a state transition.
type Event interface {
	Name() string
}

// Guard evaluates whether a transition should be allowed based on runtime
// conditions.
type Guard func(ctx context.Context, rec *Record, from State, event Event) bool

// BeforeCallback runs before a resolved transition persists its state change.
// Returning false halts the whole collection without it being an error.
type BeforeCallback func(ctx context.Context, rec *Record, from, to State, event Event) bool

// AfterCallback runs once the pipeline has settled, receiving the transition's
// action result (nil when the machine has no action) and the overall outcome.
type AfterCallback func(ctx context.Context, rec *Record, from, to State, event Event, result any, success bool)

// ActionFunc is a side-effect operation registered on a Record and invoked by
// identifier once the persistence phase completes. A falsy result (nil or
// false) fails the run without being an error.
type ActionFunc func(ctx context.Context) (any, error)

// StringState provides a simple string-based state implementation for basic
// use cases.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent provides a simple string-based event implementation for basic
// use cases.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}

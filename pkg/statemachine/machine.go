package statemachine

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrymomot/statekit/pkg/transition"
)

// Machine governs the legal transitions of one named attribute on subject
// records. It holds no per-subject state itself: the same machine drives any
// number of records, reading and writing the attribute it is bound to.
// Uses a nested map structure for O(1) transition lookups: [fromState][event][]def
type Machine struct {
	attribute   string
	action      string
	initial     State
	transitions map[string]map[string][]transitionDef
	before      []BeforeCallback
	after       []AfterCallback
	mu          sync.RWMutex
}

type transitionDef struct {
	from   State
	to     State
	event  Event
	guards []Guard
}

func (d transitionDef) passes(ctx context.Context, rec *Record, event Event) bool {
	for _, guard := range d.guards {
		if guard != nil && !guard(ctx, rec, d.from, event) {
			return false
		}
	}
	return true
}

// New creates a machine governing the named attribute, starting subjects at
// initialState when the attribute is unset.
func New(attribute string, initialState State, opts ...Option) (*Machine, error) {
	if attribute == "" {
		return nil, ErrEmptyAttribute
	}
	if initialState == nil {
		return nil, ErrNilInitialState
	}

	m := &Machine{
		attribute:   attribute,
		initial:     initialState,
		transitions: make(map[string]map[string][]transitionDef),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// MustNew creates a machine with the given attribute and options.
// Panics if any option fails to apply, following statekit's fail-fast pattern.
func MustNew(attribute string, initialState State, opts ...Option) *Machine {
	m, err := New(attribute, initialState, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// Attribute returns the name of the attribute this machine governs.
func (m *Machine) Attribute() string { return m.attribute }

// Action returns the machine's action identifier, or "" when it has none.
func (m *Machine) Action() string { return m.action }

// InitialState returns the state used when a record's attribute is unset.
func (m *Machine) InitialState() State { return m.initial }

// AddTransition registers a transition from one state to another for an event.
func (m *Machine) AddTransition(from, to State, event Event, guards []Guard) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fromName := from.Name()
	eventName := event.Name()

	if _, ok := m.transitions[fromName]; !ok {
		m.transitions[fromName] = make(map[string][]transitionDef)
	}

	// Multiple transitions allowed for same from/event to support guard-based branching
	m.transitions[fromName][eventName] = append(m.transitions[fromName][eventName], transitionDef{
		from:   from,
		to:     to,
		event:  event,
		guards: guards,
	})
	return nil
}

// CurrentState returns the record's state for this machine's attribute,
// falling back to the initial state when the attribute is unset.
func (m *Machine) CurrentState(rec *Record) string {
	if v := rec.Get(m.attribute); v != "" {
		return v
	}
	return m.initial.Name()
}

// TransitionFor resolves the transition event would take on rec, ready to be
// performed by a transition.Collection. Returns ErrNoTransitionAvailable when
// no transition is defined for the current state and event, and
// ErrTransitionRejected when every candidate was blocked by guards.
func (m *Machine) TransitionFor(ctx context.Context, rec *Record, event Event) (transition.Transition, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}
	if event == nil {
		return nil, ErrInvalidEvent
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	fromName := m.CurrentState(rec)
	eventName := event.Name()

	defs, ok := m.transitions[fromName][eventName]
	if !ok || len(defs) == 0 {
		return nil, NewErrNoTransitionAvailable(m.attribute, fromName, eventName)
	}

	// First transition with passing guards wins (enables priority ordering)
	for i := range defs {
		if defs[i].passes(ctx, rec, event) {
			return &boundTransition{machine: m, record: rec, def: defs[i], event: event}, nil
		}
	}

	return nil, NewErrTransitionRejected(m.attribute, fromName, eventName)
}

// CanFire reports whether event would resolve to a transition on rec.
func (m *Machine) CanFire(ctx context.Context, rec *Record, event Event) bool {
	_, err := m.TransitionFor(ctx, rec, event)
	return err == nil
}

// Fire resolves event on rec and performs it as a single-transition
// collection. It reports the pipeline outcome; resolution failures are
// returned as errors before any side effect occurs.
func (m *Machine) Fire(ctx context.Context, rec *Record, event Event, opts ...transition.Option) (bool, error) {
	t, err := m.TransitionFor(ctx, rec, event)
	if err != nil {
		return false, err
	}

	coll, err := transition.New([]transition.Transition{t}, opts...)
	if err != nil {
		return false, err
	}
	return coll.Perform(ctx)
}

// PendingEvent returns the requested-event marker stored on obj for this
// machine's attribute, or "" when nothing is pending.
func (m *Machine) PendingEvent(obj transition.Object) string {
	if rec, ok := obj.(*Record); ok {
		return rec.pendingEvent(m.attribute)
	}
	return ""
}

// SetPendingEvent writes the requested-event marker on obj; "" clears it.
func (m *Machine) SetPendingEvent(obj transition.Object, event string) {
	if rec, ok := obj.(*Record); ok {
		rec.setPendingEvent(m.attribute, event)
	}
}

// PendingTransition returns the transition parked on obj for deferred
// after-callback execution, or nil.
func (m *Machine) PendingTransition(obj transition.Object) transition.Transition {
	if rec, ok := obj.(*Record); ok {
		return rec.pendingTransition(m.attribute)
	}
	return nil
}

// SetPendingTransition parks a transition on obj; nil clears the slot.
func (m *Machine) SetPendingTransition(obj transition.Object, t transition.Transition) {
	if rec, ok := obj.(*Record); ok {
		rec.setPendingTransition(m.attribute, t)
	}
}

// FirePending resolves each machine's requested-event marker on rec and
// performs the resulting transitions as one attribute-event collection.
// Machines with no pending event are skipped; ErrNoPendingEvent is returned
// when nothing is pending. On failure each marker is restored so the same
// events can be retried.
func FirePending(ctx context.Context, rec *Record, machines []*Machine, opts ...transition.Option) (bool, error) {
	if rec == nil {
		return false, ErrNilRecord
	}

	var ts []transition.Transition
	for _, m := range machines {
		name := m.PendingEvent(rec)
		if name == "" {
			continue
		}
		t, err := m.TransitionFor(ctx, rec, StringEvent(name))
		if err != nil {
			return false, fmt.Errorf("pending event '%s' on attribute '%s': %w", name, m.attribute, err)
		}
		ts = append(ts, t)
	}
	if len(ts) == 0 {
		return false, ErrNoPendingEvent
	}

	coll, err := transition.NewAttribute(ts, opts...)
	if err != nil {
		return false, err
	}
	return coll.Perform(ctx)
}

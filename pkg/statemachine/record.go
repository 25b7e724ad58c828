package statemachine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/statekit/pkg/transition"
)

// Record is an in-memory subject object: a bag of machine-governed attributes,
// a registry of named side-effect actions, and a snapshot-based transactional
// scope. It implements transition.Object, so records can anchor transition
// collections directly.
type Record struct {
	id                 uuid.UUID
	mu                 sync.RWMutex
	attrs              map[string]string
	pendingEvents      map[string]string
	pendingTransitions map[string]transition.Transition
	actions            map[string]ActionFunc
}

// NewRecord creates an empty record with a fresh identity.
func NewRecord() *Record {
	return &Record{
		id:                 uuid.New(),
		attrs:              make(map[string]string),
		pendingEvents:      make(map[string]string),
		pendingTransitions: make(map[string]transition.Transition),
		actions:            make(map[string]ActionFunc),
	}
}

// ID returns the record's identity.
func (r *Record) ID() uuid.UUID { return r.id }

// Get returns the stored value of attribute, or "" when unset.
func (r *Record) Get(attribute string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.attrs[attribute]
}

// Set stores value under attribute.
func (r *Record) Set(attribute, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attrs[attribute] = value
}

// RegisterAction binds an action identifier to fn, replacing any previous
// binding.
func (r *Record) RegisterAction(name string, fn ActionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = fn
}

// Invoke runs the named action and returns its result.
func (r *Record) Invoke(ctx context.Context, action string) (any, error) {
	r.mu.RLock()
	fn, ok := r.actions[action]
	r.mu.RUnlock()

	if !ok {
		return nil, NewUnknownActionError(action)
	}
	return fn(ctx)
}

// WithinTransaction snapshots the record's attributes, runs fn, and restores
// the snapshot unless fn reports success. The pending-event bookkeeping is not
// part of the snapshot; the attribute-event pipeline maintains it explicitly.
func (r *Record) WithinTransaction(ctx context.Context, fn func(ctx context.Context) (bool, error)) error {
	snapshot := r.snapshot()

	ok, err := fn(ctx)
	if err != nil || !ok {
		r.restore(snapshot)
	}
	return err
}

func (r *Record) snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.attrs))
	for k, v := range r.attrs {
		out[k] = v
	}
	return out
}

func (r *Record) restore(snapshot map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attrs = make(map[string]string, len(snapshot))
	for k, v := range snapshot {
		r.attrs[k] = v
	}
}

func (r *Record) pendingEvent(attribute string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pendingEvents[attribute]
}

func (r *Record) setPendingEvent(attribute, event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event == "" {
		delete(r.pendingEvents, attribute)
		return
	}
	r.pendingEvents[attribute] = event
}

func (r *Record) pendingTransition(attribute string) transition.Transition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pendingTransitions[attribute]
}

func (r *Record) setPendingTransition(attribute string, t transition.Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t == nil {
		delete(r.pendingTransitions, attribute)
		return
	}
	r.pendingTransitions[attribute] = t
}

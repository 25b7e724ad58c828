package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid transition: from, to, or event cannot be nil")
	ErrInvalidEvent      = errors.New("invalid event: event cannot be nil")
	ErrEmptyAttribute    = errors.New("machine attribute cannot be empty")
	ErrNilInitialState   = errors.New("initial state cannot be nil")
	ErrNilRecord         = errors.New("record cannot be nil")
	ErrNoPendingEvent    = errors.New("no pending event on any machine")
)

// ErrNoTransitionAvailable indicates no transition exists for the given
// state/event combination on a machine's attribute.
type ErrNoTransitionAvailable struct {
	Attribute string
	StateName string
	EventName string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s' on attribute '%s'", e.StateName, e.EventName, e.Attribute)
}

func NewErrNoTransitionAvailable(attribute, stateName, eventName string) *ErrNoTransitionAvailable {
	return &ErrNoTransitionAvailable{
		Attribute: attribute,
		StateName: stateName,
		EventName: eventName,
	}
}

// ErrTransitionRejected indicates all possible transitions were blocked by
// guard functions.
type ErrTransitionRejected struct {
	Attribute string
	StateName string
	EventName string
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("transition from state '%s' for event '%s' on attribute '%s' was rejected by guards", e.StateName, e.EventName, e.Attribute)
}

func NewErrTransitionRejected(attribute, stateName, eventName string) *ErrTransitionRejected {
	return &ErrTransitionRejected{
		Attribute: attribute,
		StateName: stateName,
		EventName: eventName,
	}
}

// UnknownActionError indicates a record has no action registered under the
// invoked identifier.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("no action registered under '%s'", e.Action)
}

func NewUnknownActionError(action string) *UnknownActionError {
	return &UnknownActionError{Action: action}
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}

func IsUnknownActionError(err error) bool {
	var e *UnknownActionError
	return errors.As(err, &e)
}

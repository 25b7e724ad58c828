package transition

import (
	"errors"
	"fmt"
)

var (
	// ErrNilTransition is returned when a collection is constructed with a nil
	// transition.
	ErrNilTransition = errors.New("transition cannot be nil")

	// ErrAlreadyPerformed is returned when Perform is called a second time on
	// the same collection; results and success state are not reset between
	// calls.
	ErrAlreadyPerformed = errors.New("transition collection has already been performed")
)

// DuplicateAttributeError indicates two transitions in one collection target
// the same attribute.
type DuplicateAttributeError struct {
	Attribute string
}

func (e *DuplicateAttributeError) Error() string {
	return fmt.Sprintf("duplicate transition for attribute '%s'", e.Attribute)
}

func NewDuplicateAttributeError(attribute string) *DuplicateAttributeError {
	return &DuplicateAttributeError{Attribute: attribute}
}

func IsDuplicateAttributeError(err error) bool {
	var e *DuplicateAttributeError
	return errors.As(err, &e)
}

package workflow

import (
	"errors"
	"fmt"
)

// Typed, non-fatal rejection reasons. The API layer maps these to
// user-facing responses; the core never panics on bad input.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("operation not permitted for role")
	ErrInvalidState      = errors.New("operation not valid in current state")
	ErrOutOfRange        = errors.New("value out of range")
	ErrAlreadyForwarded  = errors.New("milestone already forwarded to admin")
	ErrAlreadySubmitted  = errors.New("financial record already submitted")
)

// TransitionError names the current status and the requested event for a
// transition outside the state table. Matches ErrInvalidTransition under
// errors.Is.
type TransitionError struct {
	From  string
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s while %s", e.Event, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

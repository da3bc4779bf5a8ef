package workflow

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/order"
)

var (
	// ErrInvalidTransition is the sentinel error for events refused by the
	// transition table or by a guard. Client error, never retried.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInstanceNotStarted is returned when firing against an instance that
	// was never started.
	ErrInstanceNotStarted = errors.New("workflow instance is not started")
)

// InvalidTransitionError reports an event that is not legal from the current
// state. Guard refusals produce the same error as undeclared (state, event)
// pairs; callers cannot distinguish the two.
// Wraps ErrInvalidTransition so callers can classify it with errors.Is.
type InvalidTransitionError struct {
	State order.State
	Event Event
}

// NewInvalidTransitionError creates an InvalidTransitionError naming the
// refusing state and the rejected event.
func NewInvalidTransitionError(state order.State, event Event) *InvalidTransitionError {
	return &InvalidTransitionError{State: state, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: event %s is not allowed from state %s",
		ErrInvalidTransition, e.Event, e.State)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

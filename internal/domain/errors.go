package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy of the engine. Every operation returns one of these (or a
// wrapper unwrapping to one) and leaves the record untouched on failure.
var (
	ErrNotFound               = errors.New("record not found")
	ErrInvalidTransition      = errors.New("invalid booking transition")
	ErrCancellationNotAllowed = errors.New("cancellation not allowed at this time")
	ErrAlreadyConfirmed       = errors.New("return already confirmed")
	ErrDisputeAlreadyActive   = errors.New("an unresolved dispute already exists for this booking")
	ErrEvidenceTooLarge       = errors.New("evidence file exceeds the size limit")
	ErrInvalidReviewInput     = errors.New("invalid review input")
	ErrNotParticipant         = errors.New("user is not a party to this booking")
	ErrCodeMismatch           = errors.New("validation code does not match")
)

// TransitionError reports a state machine violation together with the current
// status and the actions still available, so the caller can render the
// disabled control without a second round trip.
type TransitionError struct {
	BookingID      string
	Status         BookingStatus
	Attempted      string
	AllowedActions []string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking %s: cannot %s from status %s", e.BookingID, e.Attempted, e.Status)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NewTransitionError builds a TransitionError for an attempted operation.
func NewTransitionError(b *Booking, attempted string) *TransitionError {
	return &TransitionError{
		BookingID:      b.ID,
		Status:         b.Status,
		Attempted:      attempted,
		AllowedActions: AllowedActions(b),
	}
}

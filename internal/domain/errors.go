package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for booking operations. The calling layer translates
// these into user-facing messages; the engine never returns generic faults.
var (
	// ErrInvalidRange is returned when a proposed start is not before its end.
	ErrInvalidRange = errors.New("start must be before end")
	// ErrOutsideWindow is returned when a proposed range falls outside the
	// event's door-open/end window.
	ErrOutsideWindow = errors.New("outside event window")
	// ErrOverlap is returned when a proposed range overlaps a committed slot.
	ErrOverlap = errors.New("overlaps an accepted slot")
	// ErrAlreadyActive is returned when the artist already has a pending or
	// accepted invitation for the event.
	ErrAlreadyActive = errors.New("invitation already active")
	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIllegalState is returned when a transition is not legal from the
	// current invitation or event state.
	ErrIllegalState = errors.New("illegal state")
	// ErrForbidden is returned when the actor may not perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyPublished is returned when mutating a draft-only field of a
	// published event.
	ErrAlreadyPublished = errors.New("event already published")
	// ErrNotReady is the match target for NotReadyError.
	ErrNotReady = errors.New("event not ready to publish")
)

// NotReadyError reports a failed publish attempt together with the lineup
// counts, so callers can render "waiting on N artists".
type NotReadyError struct {
	Accepted     int
	TotalInvited int
	Pending      int
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("event not ready to publish: %d/%d accepted, %d pending",
		e.Accepted, e.TotalInvited, e.Pending)
}

// Is makes errors.Is(err, ErrNotReady) match a *NotReadyError.
func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}

package domain

import (
	"fmt"
	"time"
)

// allowedTransitions is the full lifecycle table. Cancelled and completed are
// terminal; no_show keeps a single correction path to completed.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusRequested:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCompleted, StatusCancelled, StatusNoShow, StatusInProgress},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusNoShow:     {StatusCompleted},
	StatusCancelled:  {},
	StatusCompleted:  {},
}

// CanTransition reports whether the lifecycle table allows from -> to
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition returns a new snapshot with the requested status, or fails with
// ErrAlreadyInStatus / ErrInvalidTransition. It is total over every
// (current, requested) pair: there is no silent no-op.
func (a Appointment) Transition(to AppointmentStatus, now time.Time) (Appointment, error) {
	if _, err := ParseStatus(string(to)); err != nil {
		return Appointment{}, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}

	if a.Status == to {
		return Appointment{}, fmt.Errorf("%w: %s", ErrAlreadyInStatus, a.Status)
	}

	if !CanTransition(a.Status, to) {
		return Appointment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}

	a.Status = to
	a.UpdatedAt = now
	return a, nil
}

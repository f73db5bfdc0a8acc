package domain

import "errors"

var (
	// ErrInvalidInterval is returned when an interval's start is not strictly before its end
	ErrInvalidInterval = errors.New("domain: invalid time interval")

	// ErrAlreadyInStatus is returned when a transition targets the appointment's current status
	ErrAlreadyInStatus = errors.New("domain: appointment already in requested status")

	// ErrInvalidTransition is returned when the transition table does not allow the requested change
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrUnknownStatus is returned for status values outside the lifecycle state machine
	ErrUnknownStatus = errors.New("domain: unknown appointment status")
)

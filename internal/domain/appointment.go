package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusRequested  AppointmentStatus = "requested"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// PaymentStatus represents the payment state captured in the pricing snapshot
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// BookingSource identifies which channel created the appointment
type BookingSource string

const (
	SourceOnline BookingSource = "online"
	SourceManual BookingSource = "manual"
)

// BookingDelegate describes who books on behalf of the client
type BookingDelegate struct {
	FirstName    string
	LastName     string
	Relationship string // e.g. "parent", "caregiver"
}

// ClientInfo holds the client contact details captured at booking time
type ClientInfo struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       *string
	IsNewClient bool
	BookedBy    *BookingDelegate
}

// PricingSnapshot freezes the service price at booking time
type PricingSnapshot struct {
	BaseAmount    float64
	TotalAmount   float64
	Currency      string
	PaymentStatus PaymentStatus
}

// AppointmentNote is a timestamped free-form audit note
type AppointmentNote struct {
	Text      string
	CreatedAt time.Time
}

// Appointment is an immutable snapshot of a booked appointment.
// All mutation goes through transition functions that return a new snapshot;
// callers must always use the returned value.
type Appointment struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	CalendarID uuid.UUID
	ServiceID  uuid.UUID
	StaffID    *uuid.UUID

	Interval TimeInterval
	Client   ClientInfo
	Pricing  PricingSnapshot
	Status   AppointmentStatus
	Source   BookingSource
	Notes    []AppointmentNote

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksCalendar reports whether the appointment occupies calendar time.
// Cancellation is a status, not a removal, so only cancelled appointments
// free their interval.
func (a Appointment) BlocksCalendar() bool {
	return a.Status != StatusCancelled
}

// IsTerminal reports whether no further transition is permitted from the
// current status (except the documented no_show -> completed correction,
// which the transition table carries)
func (a Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// AssignedTo reports whether the appointment is assigned to the given staff member
func (a Appointment) AssignedTo(staffID uuid.UUID) bool {
	return a.StaffID != nil && *a.StaffID == staffID
}

// WithNote returns a copy of the appointment with an appended audit note.
// The notes slice is copied so the original snapshot stays untouched.
func (a Appointment) WithNote(text string, at time.Time) Appointment {
	notes := make([]AppointmentNote, len(a.Notes), len(a.Notes)+1)
	copy(notes, a.Notes)
	notes = append(notes, AppointmentNote{Text: text, CreatedAt: at})

	a.Notes = notes
	a.UpdatedAt = at
	return a
}

// ParseStatus validates a raw status value against the state machine
func ParseStatus(raw string) (AppointmentStatus, error) {
	switch AppointmentStatus(raw) {
	case StatusRequested, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return AppointmentStatus(raw), nil
	default:
		return "", ErrUnknownStatus
	}
}

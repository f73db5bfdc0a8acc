package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []AppointmentStatus{
	StatusRequested, StatusConfirmed, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusNoShow,
}

func TestTransition_Table(t *testing.T) {
	allowed := map[AppointmentStatus]map[AppointmentStatus]bool{
		StatusRequested:  {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed:  {StatusCompleted: true, StatusCancelled: true, StatusNoShow: true, StatusInProgress: true},
		StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
		StatusNoShow:     {StatusCompleted: true},
		StatusCancelled:  {},
		StatusCompleted:  {},
	}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// every (current, requested) pair resolves to a new snapshot or a
	// distinguishable error; there is no silent no-op
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			appt := Appointment{Status: from}
			updated, err := appt.Transition(to, now)

			switch {
			case from == to:
				assert.ErrorIs(t, err, ErrAlreadyInStatus, "%s -> %s", from, to)
			case allowed[from][to]:
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, updated.Status)
				assert.Equal(t, now, updated.UpdatedAt)
			default:
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestTransition_ErrorNamesBothStatuses(t *testing.T) {
	appt := Appointment{Status: StatusCompleted}

	_, err := appt.Transition(StatusConfirmed, time.Now())
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "completed")
	assert.Contains(t, err.Error(), "confirmed")
}

func TestTransition_UnknownStatus(t *testing.T) {
	appt := Appointment{Status: StatusRequested}

	_, err := appt.Transition("archived", time.Now())
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTransition_NoShowCorrection(t *testing.T) {
	appt := Appointment{Status: StatusNoShow}

	updated, err := appt.Transition(StatusCompleted, time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.True(t, updated.IsTerminal())
}

func TestBlocksCalendar(t *testing.T) {
	for _, status := range allStatuses {
		appt := Appointment{Status: status}
		assert.Equal(t, status != StatusCancelled, appt.BlocksCalendar(), "status %s", status)
	}
}

func TestWithNote_CopiesSnapshot(t *testing.T) {
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	appt := Appointment{Status: StatusRequested}
	appt.Notes = []AppointmentNote{{Text: "first", CreatedAt: at}}

	updated := appt.WithNote("second", at.Add(time.Minute))

	require.Len(t, updated.Notes, 2)
	assert.Equal(t, "second", updated.Notes[1].Text)
	assert.Equal(t, at.Add(time.Minute), updated.UpdatedAt)
	// the original snapshot stays untouched
	assert.Len(t, appt.Notes, 1)
}

func TestParseStatus(t *testing.T) {
	for _, status := range allStatuses {
		parsed, err := ParseStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseStatus("pending")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, startHour, endHour int) TimeInterval {
	t.Helper()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	i, err := NewTimeInterval(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return i
}

func TestNewTimeInterval_Validation(t *testing.T) {
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := NewTimeInterval(at, at)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(at.Add(time.Hour), at)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(time.Time{}, at)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	i, err := NewTimeInterval(at, at.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, i.Duration())
}

func TestOverlaps(t *testing.T) {
	base := mustInterval(t, 10, 12)

	tests := []struct {
		name     string
		other    TimeInterval
		overlaps bool
	}{
		{"identical", mustInterval(t, 10, 12), true},
		{"contained", mustInterval(t, 10, 11), true},
		{"contains", mustInterval(t, 9, 13), true},
		{"partial left", mustInterval(t, 9, 11), true},
		{"partial right", mustInterval(t, 11, 13), true},
		{"touching before", mustInterval(t, 8, 10), false},
		{"touching after", mustInterval(t, 12, 14), false},
		{"disjoint before", mustInterval(t, 7, 8), false},
		{"disjoint after", mustInterval(t, 13, 14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			// overlap is symmetric
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
		})
	}
}

func TestIsInPast(t *testing.T) {
	i := mustInterval(t, 10, 12)

	assert.False(t, i.IsInPast(i.Start))
	assert.False(t, i.IsInPast(i.Start.Add(time.Hour)))
	// [start, end): the interval has elapsed exactly at its end
	assert.True(t, i.IsInPast(i.End))
	assert.True(t, i.IsInPast(i.End.Add(time.Minute)))
}

func TestHasStarted(t *testing.T) {
	i := mustInterval(t, 10, 12)

	assert.False(t, i.HasStarted(i.Start.Add(-time.Minute)))
	// a started slot is no longer bookable even though it has not elapsed
	assert.True(t, i.HasStarted(i.Start))
	assert.True(t, i.HasStarted(i.Start.Add(time.Minute)))
	assert.False(t, i.IsInPast(i.Start.Add(time.Minute)))
}

func TestEqual(t *testing.T) {
	a := mustInterval(t, 10, 12)
	assert.True(t, a.Equal(mustInterval(t, 10, 12)))
	assert.False(t, a.Equal(mustInterval(t, 10, 11)))
}

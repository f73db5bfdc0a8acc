package domain

import (
	"fmt"
	"time"
)

// TimeInterval represents an immutable half-open time interval [Start, End)
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval creates a validated time interval.
// Returns ErrInvalidInterval unless start is strictly before end.
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if start.IsZero() || end.IsZero() {
		return TimeInterval{}, fmt.Errorf("%w: start and end are required", ErrInvalidInterval)
	}
	if !start.Before(end) {
		return TimeInterval{}, fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching boundaries do not overlap: an appointment ending at 10:00
// does not conflict with one starting at 10:00.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// IsInPast reports whether the interval has fully elapsed at the given instant
func (i TimeInterval) IsInPast(now time.Time) bool {
	return !i.End.After(now)
}

// HasStarted reports whether the interval's start is no longer strictly in the
// future. A slot whose start has been reached can no longer be booked even
// though the interval itself has not fully elapsed.
func (i TimeInterval) HasStarted(now time.Time) bool {
	return !i.Start.After(now)
}

// Duration returns the interval length
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Equal reports whether both intervals cover exactly the same instants
func (i TimeInterval) Equal(other TimeInterval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

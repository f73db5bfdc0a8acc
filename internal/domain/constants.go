package domain

// Default booking engine values
const (
	DefaultSlotDurationMinutes  = 30
	DefaultMinNoticeMinutes     = 120 // 2 hours
	DefaultWorkingDayStartHour  = 9
	DefaultWorkingDayEndHour    = 18
	DefaultAdvanceHorizonMonths = 3
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

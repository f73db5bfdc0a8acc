package generate_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CalendarID == uuid.Nil {
		return fmt.Errorf("%w: calendarId is required", ErrInvalidInput)
	}
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID == uuid.Nil {
		return fmt.Errorf("%w: staffId must not be empty when provided", ErrInvalidInput)
	}

	switch req.Mode {
	case ModeDay, ModeWeek, ModeNextWeek:
	default:
		return fmt.Errorf("%w: unknown view mode %q", ErrInvalidInput, req.Mode)
	}

	if req.ReferenceDate.IsZero() {
		return fmt.Errorf("%w: reference date is required", ErrInvalidInput)
	}

	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	return nil
}

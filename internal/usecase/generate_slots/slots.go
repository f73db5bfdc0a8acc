package generate_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	"github.com/Dramanable/rv-server-sub004/internal/service/conflicts"
)

// generateDaySlots обходит рабочее окно дня с фиксированным шагом и помечает
// каждого кандидата. Слот недоступен с причиной "occupied", если детектор
// находит пересечение; иначе с причиной "past", если его начало не строго в
// будущем. Бронирования дня загружены одним запросом, проверка каждого
// кандидата выполняется в памяти.
func generateDaySlots(
	date time.Time,
	open, close time.Time,
	slotDuration time.Duration,
	bookings []*domain.Appointment,
	staffID *uuid.UUID,
	price *float64,
	now time.Time,
) domain.DaySlots {
	day := domain.DaySlots{
		Date:  date.Format(domain.DateFormat),
		Slots: []domain.Slot{},
	}

	for start := open; ; start = start.Add(slotDuration) {
		end := start.Add(slotDuration)
		// Слот должен целиком помещаться в рабочее окно
		if end.After(close) {
			break
		}

		candidate := domain.TimeInterval{Start: start, End: end}

		slot := domain.Slot{
			Interval:  candidate,
			Available: true,
			StaffID:   staffID,
			Price:     price,
		}

		if len(conflicts.Overlapping(bookings, candidate, staffID)) > 0 {
			slot.Available = false
			slot.UnavailableReason = domain.ReasonOccupied
		} else if candidate.HasStarted(now) {
			slot.Available = false
			slot.UnavailableReason = domain.ReasonPast
		}

		day.Slots = append(day.Slots, slot)
	}

	return day
}

// filterAvailable отбрасывает недоступные слоты (дефолтный режим выдачи).
// Метрики периода считаются до фильтрации, по полному набору кандидатов.
func filterAvailable(days []domain.DaySlots) []domain.DaySlots {
	filtered := make([]domain.DaySlots, len(days))

	for i, day := range days {
		kept := make([]domain.Slot, 0, len(day.Slots))
		for _, slot := range day.Slots {
			if slot.Available {
				kept = append(kept, slot)
			}
		}
		filtered[i] = domain.DaySlots{Date: day.Date, Slots: kept}
	}

	return filtered
}

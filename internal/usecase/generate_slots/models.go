package generate_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// ViewMode период выдачи слотов
type ViewMode string

const (
	ModeDay      ViewMode = "day"
	ModeWeek     ViewMode = "week"
	ModeNextWeek ViewMode = "next_week"
)

// Request модель запроса на генерацию слотов
type Request struct {
	CalendarID uuid.UUID
	ServiceID  uuid.UUID
	StaffID    *uuid.UUID // опционально: слоты конкретного сотрудника

	Mode          ViewMode
	ReferenceDate time.Time

	SlotDurationMinutes int

	// IncludeUnavailable включает диагностический режим: недоступные слоты
	// возвращаются с причиной вместо того, чтобы быть отброшенными
	IncludeUnavailable bool
}

// Response модель ответа с сгенерированными слотами
type Response struct {
	CalendarID uuid.UUID
	ServiceID  uuid.UUID
	Mode       ViewMode

	PeriodStart time.Time
	PeriodEnd   time.Time

	Days    []domain.DaySlots
	Metrics domain.SlotMetrics

	// Навигация по периодам: в прошлое листать нельзя,
	// вперед — не дальше горизонта бронирования
	HasPrevious bool
	HasNext     bool
}

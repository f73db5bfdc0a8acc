package generate_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	"github.com/Dramanable/rv-server-sub004/internal/infra/storage/directory"
)

// AppointmentRepository интерфейс репозитория бронирований.
// Генератор слотов только читает существующие записи.
type AppointmentRepository interface {
	FindByCalendarAndRange(ctx context.Context, calendarID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error)
}

// DirectoryRepository интерфейс справочника сущностей платформы
type DirectoryRepository interface {
	GetCalendar(ctx context.Context, id uuid.UUID) (*directory.Calendar, error)
	GetService(ctx context.Context, id uuid.UUID) (*directory.Service, error)
}

// WorkingWindowProvider отдает рабочее окно календаря на указанную дату.
// Подключаемая точка расширения: более богатый справочник календарей может
// подменить фиксированное окно без изменения логики генератора.
type WorkingWindowProvider interface {
	WindowFor(date time.Time) (open, close time.Time)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

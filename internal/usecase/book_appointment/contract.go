package book_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	"github.com/Dramanable/rv-server-sub004/internal/infra/storage/directory"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ConflictDetector интерфейс детектора конфликтов
type ConflictDetector interface {
	FindConflicts(ctx context.Context, calendarID uuid.UUID, interval domain.TimeInterval, staffID *uuid.UUID, excludeID *uuid.UUID) ([]*domain.Appointment, error)
}

// DirectoryRepository интерфейс справочника сущностей платформы
type DirectoryRepository interface {
	GetBusiness(ctx context.Context, id uuid.UUID) (*directory.Business, error)
	GetService(ctx context.Context, id uuid.UUID) (*directory.Service, error)
	GetCalendar(ctx context.Context, id uuid.UUID) (*directory.Calendar, error)
	GetStaff(ctx context.Context, id uuid.UUID) (*directory.Staff, error)
}

// Notifier интерфейс отправки подтверждения бронирования.
// Сбой уведомления не откатывает уже сохранённое бронирование.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, appt *domain.Appointment) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

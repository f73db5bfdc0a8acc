package conflicts

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	FindConflicting(ctx context.Context, calendarID uuid.UUID, interval domain.TimeInterval, excludeID *uuid.UUID) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

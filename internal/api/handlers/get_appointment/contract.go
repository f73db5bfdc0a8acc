package get_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

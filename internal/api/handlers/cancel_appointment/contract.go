package cancel_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

type AppointmentService interface {
	Cancel(ctx context.Context, id uuid.UUID, reason *string) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package book_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// Delegate описывает, кто бронирует от имени клиента
type Delegate struct {
	FirstName    string
	LastName     string
	Relationship string
}

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID uuid.UUID
	CalendarID uuid.UUID
	ServiceID  uuid.UUID
	StaffID    *uuid.UUID // опционально: конкретный сотрудник

	Start time.Time
	End   time.Time

	ClientFirstName string
	ClientLastName  string
	ClientEmail     string
	ClientPhone     *string
	IsNewClient     bool
	BookedBy        *Delegate

	Notes  *string
	Source domain.BookingSource
}

// Response модель ответа с созданным бронированием
type Response struct {
	Appointment *domain.Appointment

	// NotificationSent false означает degraded success: бронирование создано,
	// но подтверждение отправить не удалось
	NotificationSent bool
}

package directory

import (
	"time"

	"github.com/google/uuid"
)

// Business компания-арендатор платформы
type Business struct {
	ID        uuid.UUID
	Name      string
	IsActive  bool
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service услуга компании, доступная для бронирования
type Service struct {
	ID                 uuid.UUID
	BusinessID         uuid.UUID
	Name               string
	IsActive           bool
	AllowOnlineBooking bool
	BaseAmount         float64
	Currency           string
	DurationMinutes    int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Calendar календарь, по которому проверяются конфликты бронирований
type Calendar struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Staff сотрудник компании
type Staff struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	FirstName  string
	LastName   string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package book_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	"github.com/Dramanable/rv-server-sub004/internal/service/appointments/models"
	bookAppointment "github.com/Dramanable/rv-server-sub004/internal/usecase/book_appointment"
)

// DelegateRequest HTTP-модель делегата бронирования
type DelegateRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Relationship string `json:"relationship"`
}

// ClientRequest HTTP-модель данных клиента
type ClientRequest struct {
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	Email       string           `json:"email"`
	Phone       *string          `json:"phone,omitempty"`
	IsNewClient bool             `json:"isNewClient"`
	BookedBy    *DelegateRequest `json:"bookedBy,omitempty"`
}

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	BusinessID string  `json:"businessId"`
	CalendarID string  `json:"calendarId"`
	ServiceID  string  `json:"serviceId"`
	StaffID    *string `json:"staffId,omitempty"`

	StartTime string `json:"startTime"` // RFC 3339
	EndTime   string `json:"endTime"`   // RFC 3339

	Client ClientRequest `json:"client"`

	Notes  *string `json:"notes,omitempty"`
	Source string  `json:"source,omitempty"` // online (default) | manual
}

// BookAppointmentResponse HTTP response model
type BookAppointmentResponse struct {
	Appointment      *models.AppointmentResponse `json:"appointment"`
	NotificationSent bool                        `json:"notificationSent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	businessID, err := uuid.Parse(r.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("invalid businessId: %w", err)
	}
	calendarID, err := uuid.Parse(r.CalendarID)
	if err != nil {
		return nil, fmt.Errorf("invalid calendarId: %w", err)
	}
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid serviceId: %w", err)
	}

	var staffID *uuid.UUID
	if r.StaffID != nil {
		id, err := uuid.Parse(*r.StaffID)
		if err != nil {
			return nil, fmt.Errorf("invalid staffId: %w", err)
		}
		staffID = &id
	}

	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %w", err)
	}

	var bookedBy *bookAppointment.Delegate
	if r.Client.BookedBy != nil {
		bookedBy = &bookAppointment.Delegate{
			FirstName:    r.Client.BookedBy.FirstName,
			LastName:     r.Client.BookedBy.LastName,
			Relationship: r.Client.BookedBy.Relationship,
		}
	}

	return &bookAppointment.Request{
		BusinessID:      businessID,
		CalendarID:      calendarID,
		ServiceID:       serviceID,
		StaffID:         staffID,
		Start:           start,
		End:             end,
		ClientFirstName: r.Client.FirstName,
		ClientLastName:  r.Client.LastName,
		ClientEmail:     r.Client.Email,
		ClientPhone:     r.Client.Phone,
		IsNewClient:     r.Client.IsNewClient,
		BookedBy:        bookedBy,
		Notes:           r.Notes,
		Source:          domain.BookingSource(r.Source),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *BookAppointmentResponse {
	return &BookAppointmentResponse{
		Appointment:      models.FromDomainAppointment(resp.Appointment),
		NotificationSent: resp.NotificationSent,
	}
}

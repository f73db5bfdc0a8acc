package models

import (
	"time"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// DelegateResponse HTTP-модель делегата бронирования
type DelegateResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Relationship string `json:"relationship"`
}

// ClientResponse HTTP-модель данных клиента
type ClientResponse struct {
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	Phone       *string           `json:"phone,omitempty"`
	IsNewClient bool              `json:"isNewClient"`
	BookedBy    *DelegateResponse `json:"bookedBy,omitempty"`
}

// PricingResponse HTTP-модель ценового снапшота
type PricingResponse struct {
	BaseAmount    float64 `json:"baseAmount"`
	TotalAmount   float64 `json:"totalAmount"`
	Currency      string  `json:"currency"`
	PaymentStatus string  `json:"paymentStatus"`
}

// NoteResponse HTTP-модель аудит-заметки
type NoteResponse struct {
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// AppointmentResponse HTTP-модель бронирования
type AppointmentResponse struct {
	ID         string  `json:"id"`
	BusinessID string  `json:"businessId"`
	CalendarID string  `json:"calendarId"`
	ServiceID  string  `json:"serviceId"`
	StaffID    *string `json:"staffId,omitempty"`

	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	Client  ClientResponse  `json:"client"`
	Pricing PricingResponse `json:"pricing"`

	Status string         `json:"status"`
	Source string         `json:"source"`
	Notes  []NoteResponse `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromDomainAppointment конвертирует доменный снапшот в HTTP-модель
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:         a.ID.String(),
		BusinessID: a.BusinessID.String(),
		CalendarID: a.CalendarID.String(),
		ServiceID:  a.ServiceID.String(),
		StartTime:  a.Interval.Start.Format(time.RFC3339),
		EndTime:    a.Interval.End.Format(time.RFC3339),
		Client: ClientResponse{
			FirstName:   a.Client.FirstName,
			LastName:    a.Client.LastName,
			Email:       a.Client.Email,
			Phone:       a.Client.Phone,
			IsNewClient: a.Client.IsNewClient,
		},
		Pricing: PricingResponse{
			BaseAmount:    a.Pricing.BaseAmount,
			TotalAmount:   a.Pricing.TotalAmount,
			Currency:      a.Pricing.Currency,
			PaymentStatus: string(a.Pricing.PaymentStatus),
		},
		Status:    string(a.Status),
		Source:    string(a.Source),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}

	if a.StaffID != nil {
		staffID := a.StaffID.String()
		resp.StaffID = &staffID
	}

	if a.Client.BookedBy != nil {
		resp.Client.BookedBy = &DelegateResponse{
			FirstName:    a.Client.BookedBy.FirstName,
			LastName:     a.Client.BookedBy.LastName,
			Relationship: a.Client.BookedBy.Relationship,
		}
	}

	for _, note := range a.Notes {
		resp.Notes = append(resp.Notes, NoteResponse{
			Text:      note.Text,
			CreatedAt: note.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}

package notifyservice

import "time"

// bookingConfirmationPayload тело запроса к сервису уведомлений
type bookingConfirmationPayload struct {
	AppointmentID string    `json:"appointmentId"`
	BusinessID    string    `json:"businessId"`
	ClientName    string    `json:"clientName"`
	ClientEmail   string    `json:"clientEmail"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	TotalAmount   float64   `json:"totalAmount"`
	Currency      string    `json:"currency"`
}

// confirmationResult ответ сервиса уведомлений
type confirmationResult struct {
	Sent bool `json:"sent"`
}

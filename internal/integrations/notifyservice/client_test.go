package notifyservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testAppointment() *domain.Appointment {
	start := time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:         uuid.New(),
		BusinessID: uuid.New(),
		Interval:   domain.TimeInterval{Start: start, End: start.Add(30 * time.Minute)},
		Client: domain.ClientInfo{
			FirstName: "Jean",
			LastName:  "Martin",
			Email:     "jean.martin@example.com",
		},
		Pricing: domain.PricingSnapshot{TotalAmount: 50, Currency: "EUR"},
	}
}

func TestSendBookingConfirmation(t *testing.T) {
	appt := testAppointment()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications/booking-confirmation", r.URL.Path)

		var payload bookingConfirmationPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, appt.ID.String(), payload.AppointmentID)
		assert.Equal(t, "Jean Martin", payload.ClientName)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(confirmationResult{Sent: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	sent, err := client.SendBookingConfirmation(context.Background(), appt)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestSendBookingConfirmation_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	sent, err := client.SendBookingConfirmation(context.Background(), testAppointment())
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.False(t, sent)
}

func TestSendBookingConfirmation_ServiceUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, nopLogger{})

	sent, err := client.SendBookingConfirmation(context.Background(), testAppointment())
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.False(t, sent)
}

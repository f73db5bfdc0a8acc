package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет клиенту подтверждение бронирования.
// Работает по принципу fire-and-report: возвращает флаг отправки, а при
// недоступности сервиса применяет graceful degradation — бронирование уже
// сохранено и сбой уведомления не должен его отменять.
func (c *Client) SendBookingConfirmation(ctx context.Context, appt *domain.Appointment) (bool, error) {
	payload := bookingConfirmationPayload{
		AppointmentID: appt.ID.String(),
		BusinessID:    appt.BusinessID.String(),
		ClientName:    fmt.Sprintf("%s %s", appt.Client.FirstName, appt.Client.LastName),
		ClientEmail:   appt.Client.Email,
		StartTime:     appt.Interval.Start,
		EndTime:       appt.Interval.End,
		TotalAmount:   appt.Pricing.TotalAmount,
		Currency:      appt.Pricing.Currency,
	}

	sent, err := c.send(ctx, payload)
	if err != nil {
		c.log.Error("NotifyService unavailable, applying graceful degradation for appointment=%s: %v",
			appt.ID, err)
		return false, fmt.Errorf("%w: appointment=%s, error=%v", ErrServiceDegraded, appt.ID, err)
	}

	c.log.Info("Booking confirmation dispatched for appointment=%s, sent=%t", appt.ID, sent)
	return sent, nil
}

func (c *Client) send(ctx context.Context, payload bookingConfirmationPayload) (bool, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("%w: failed to encode payload: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications/booking-confirmation", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var result confirmationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return result.Sent, nil
}

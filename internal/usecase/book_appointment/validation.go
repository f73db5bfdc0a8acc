package book_appointment

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// phoneRE допускает международный формат с разделителями: +33 1 23 45 67 89, (495) 123-45-67
var phoneRE = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,18}[0-9]$`)

// validateRequest валидирует поля запроса и темпоральные правила.
// Порядок проверок фиксирован: сначала структурные поля, затем правила времени.
func validateRequest(req *Request, now time.Time, minNotice time.Duration) error {
	if req.BusinessID == uuid.Nil {
		return fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}
	if req.CalendarID == uuid.Nil {
		return fmt.Errorf("%w: calendarId is required", ErrInvalidInput)
	}
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID == uuid.Nil {
		return fmt.Errorf("%w: staffId must not be empty when provided", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end times are required", ErrInvalidInput)
	}
	if !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientFirstName) == "" {
		return fmt.Errorf("%w: client first name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ClientLastName) == "" {
		return fmt.Errorf("%w: client last name is required", ErrInvalidInput)
	}

	if err := validateEmail(req.ClientEmail); err != nil {
		return err
	}
	if req.ClientPhone != nil {
		if err := validatePhone(*req.ClientPhone); err != nil {
			return err
		}
	}

	if req.BookedBy != nil && strings.TrimSpace(req.BookedBy.Relationship) == "" {
		return fmt.Errorf("%w: delegate relationship is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(strings.TrimSpace(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	switch req.Source {
	case domain.SourceOnline, domain.SourceManual:
	default:
		return fmt.Errorf("%w: unknown booking source %q", ErrInvalidInput, req.Source)
	}

	// Темпоральные правила: "в прошлом" и "недостаточно заранее" — разные ошибки,
	// клиенту они показываются по-разному
	if !req.Start.After(now) {
		return fmt.Errorf("%w: start=%s now=%s", ErrStartInPast,
			req.Start.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	if req.Start.Before(now.Add(minNotice)) {
		return fmt.Errorf("%w: must book at least %s in advance", ErrInsufficientNotice, minNotice)
	}

	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return fmt.Errorf("%w: invalid client email %q", ErrInvalidInput, email)
	}
	// mail.ParseAddress принимает адреса без домена; требуем полную форму
	if !strings.Contains(addr.Address, "@") || strings.HasSuffix(addr.Address, "@") {
		return fmt.Errorf("%w: invalid client email %q", ErrInvalidInput, email)
	}
	return nil
}

func validatePhone(phone string) error {
	if !phoneRE.MatchString(strings.TrimSpace(phone)) {
		return fmt.Errorf("%w: invalid client phone %q", ErrInvalidInput, phone)
	}
	return nil
}

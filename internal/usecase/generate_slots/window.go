package generate_slots

import (
	"fmt"
	"time"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// FixedWindowProvider отдает одно и то же рабочее окно на каждый день недели.
// Расписание по дням недели принадлежит справочнику календарей и в ядре не
// моделируется; этот провайдер — его дефолтная подстановка.
type FixedWindowProvider struct {
	openHour    int
	openMinute  int
	closeHour   int
	closeMinute int
}

// NewFixedWindowProvider создает провайдер с окном open..close в формате HH:MM
func NewFixedWindowProvider(open, close string) (*FixedWindowProvider, error) {
	openAt, err := time.Parse(domain.TimeFormat, open)
	if err != nil {
		return nil, fmt.Errorf("invalid working day start %q: %w", open, err)
	}
	closeAt, err := time.Parse(domain.TimeFormat, close)
	if err != nil {
		return nil, fmt.Errorf("invalid working day end %q: %w", close, err)
	}
	if !openAt.Before(closeAt) {
		return nil, fmt.Errorf("working day start %q must be before end %q", open, close)
	}

	return &FixedWindowProvider{
		openHour:    openAt.Hour(),
		openMinute:  openAt.Minute(),
		closeHour:   closeAt.Hour(),
		closeMinute: closeAt.Minute(),
	}, nil
}

// MustFixedWindowProvider как NewFixedWindowProvider, но с паникой при ошибке.
// Для дефолтного окна 09:00-18:00 из констант.
func MustFixedWindowProvider(open, close string) *FixedWindowProvider {
	p, err := NewFixedWindowProvider(open, close)
	if err != nil {
		panic(err)
	}
	return p
}

// WindowFor возвращает рабочее окно на указанную дату
func (p *FixedWindowProvider) WindowFor(date time.Time) (time.Time, time.Time) {
	open := time.Date(date.Year(), date.Month(), date.Day(), p.openHour, p.openMinute, 0, 0, date.Location())
	close := time.Date(date.Year(), date.Month(), date.Day(), p.closeHour, p.closeMinute, 0, 0, date.Location())
	return open, close
}

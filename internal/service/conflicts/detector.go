package conflicts

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// Detector проверяет кандидата на пересечение с существующими бронированиями.
// Чистое чтение: детектор ничего не создает и не изменяет.
type Detector struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewDetector создает новый экземпляр детектора конфликтов
func NewDetector(appointmentRepo AppointmentRepository, logger Logger) *Detector {
	return &Detector{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// FindConflicts возвращает неотменённые бронирования календаря, пересекающиеся
// с интервалом кандидата. Если указан staffID, конфликтами считаются только
// бронирования этого сотрудника; без staffID единицей сериализации является
// сам календарь и конфликтом считается любое пересечение.
//
// Ошибка хранилища пробрасывается как есть: сбой чтения не означает "конфликтов нет".
func (d *Detector) FindConflicts(
	ctx context.Context,
	calendarID uuid.UUID,
	interval domain.TimeInterval,
	staffID *uuid.UUID,
	excludeID *uuid.UUID,
) ([]*domain.Appointment, error) {
	existing, err := d.appointmentRepo.FindConflicting(ctx, calendarID, interval, excludeID)
	if err != nil {
		d.logger.Error("FindConflicts: repository error for calendar=%s: %v", calendarID, err)
		return nil, fmt.Errorf("find conflicting appointments: %w", err)
	}

	conflicting := Overlapping(existing, interval, staffID)

	if len(conflicting) > 0 {
		d.logger.Info("FindConflicts: calendar=%s has %d conflicting appointment(s)", calendarID, len(conflicting))
	}

	return conflicting, nil
}

// Overlapping фильтрует список бронирований по политике пересечения детектора.
// Используется генератором слотов, который загружает бронирования дня одним
// запросом и проверяет каждого кандидата в памяти.
func Overlapping(
	appointments []*domain.Appointment,
	interval domain.TimeInterval,
	staffID *uuid.UUID,
) []*domain.Appointment {
	var result []*domain.Appointment

	for _, appt := range appointments {
		// Отменённые бронирования не занимают время календаря
		if !appt.BlocksCalendar() {
			continue
		}

		if !appt.Interval.Overlaps(interval) {
			continue
		}

		// Если запрошен конкретный сотрудник, конфликтуют только его бронирования
		if staffID != nil && !appt.AssignedTo(*staffID) {
			continue
		}

		result = append(result, appt)
	}

	return result
}

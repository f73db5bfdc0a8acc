package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	appointmentRepo "github.com/Dramanable/rv-server-sub004/internal/infra/storage/appointment"
)

// Service управляет жизненным циклом бронирований.
// Все изменения статуса проходят через таблицу переходов domain.Transition;
// сервис добавляет аудит-заметки и сохраняет новый снапшот.
type Service struct {
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса жизненного цикла бронирований
func NewService(repo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: repo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return appt, nil
}

// Confirm подтверждает бронирование (requested -> confirmed)
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	return s.applyTransition(ctx, id, domain.StatusConfirmed, "appointment confirmed")
}

// Cancel отменяет бронирование с опциональной причиной.
// Отмена — это статус, а не удаление: запись остаётся в истории.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason *string) (*domain.Appointment, error) {
	if err := validateDetail(reason, domain.MaxCancellationReasonLength); err != nil {
		return nil, err
	}
	note := "appointment cancelled"
	if reason != nil && strings.TrimSpace(*reason) != "" {
		note = fmt.Sprintf("appointment cancelled: %s", strings.TrimSpace(*reason))
	}
	return s.applyTransition(ctx, id, domain.StatusCancelled, note)
}

// Complete завершает бронирование с опциональными заметками
func (s *Service) Complete(ctx context.Context, id uuid.UUID, notes *string) (*domain.Appointment, error) {
	if err := validateDetail(notes, domain.MaxNotesLength); err != nil {
		return nil, err
	}
	note := "appointment completed"
	if notes != nil && strings.TrimSpace(*notes) != "" {
		note = fmt.Sprintf("appointment completed: %s", strings.TrimSpace(*notes))
	}
	return s.applyTransition(ctx, id, domain.StatusCompleted, note)
}

// MarkNoShow отмечает неявку клиента с опциональной причиной
func (s *Service) MarkNoShow(ctx context.Context, id uuid.UUID, reason *string) (*domain.Appointment, error) {
	if err := validateDetail(reason, domain.MaxCancellationReasonLength); err != nil {
		return nil, err
	}
	note := "client did not show up"
	if reason != nil && strings.TrimSpace(*reason) != "" {
		note = fmt.Sprintf("client did not show up: %s", strings.TrimSpace(*reason))
	}
	return s.applyTransition(ctx, id, domain.StatusNoShow, note)
}

// validateDetail проверяет длину опционального пользовательского текста
func validateDetail(detail *string, maxLength int) error {
	if detail != nil && len(strings.TrimSpace(*detail)) > maxLength {
		return fmt.Errorf("%w: detail must not exceed %d characters", ErrInvalidInput, maxLength)
	}
	return nil
}

// Start переводит бронирование в работу (confirmed -> in_progress)
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	return s.applyTransition(ctx, id, domain.StatusInProgress, "appointment started")
}

// UpdateStatus обобщённая точка входа изменения статуса.
// Запрошенный целевой статус заново сводится к именованной операции;
// статус вне таблицы переходов отклоняется с ErrStatusNotImplemented.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, target domain.AppointmentStatus, detail *string) (*domain.Appointment, error) {
	switch target {
	case domain.StatusConfirmed:
		return s.Confirm(ctx, id)
	case domain.StatusCancelled:
		return s.Cancel(ctx, id, detail)
	case domain.StatusCompleted:
		return s.Complete(ctx, id, detail)
	case domain.StatusNoShow:
		return s.MarkNoShow(ctx, id, detail)
	case domain.StatusInProgress:
		return s.Start(ctx, id)
	default:
		s.logger.Warn("UpdateStatus: unmapped target status=%q for appointment id=%s", target, id)
		return nil, fmt.Errorf("%w: %q", ErrStatusNotImplemented, target)
	}
}

// applyTransition загружает бронирование, выполняет переход по таблице,
// добавляет аудит-заметку и сохраняет новый снапшот
func (s *Service) applyTransition(
	ctx context.Context,
	id uuid.UUID,
	target domain.AppointmentStatus,
	note string,
) (*domain.Appointment, error) {
	s.logger.Info("applyTransition: appointment id=%s -> %s", id, target)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("applyTransition: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("applyTransition: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: applyTransition - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	updated, err := appt.Transition(target, now)
	if err != nil {
		// domain.ErrAlreadyInStatus / domain.ErrInvalidTransition пробрасываются как есть
		s.logger.Warn("applyTransition: rejected for appointment id=%s: %v", id, err)
		return nil, err
	}

	updated = updated.WithNote(note, now)

	if err := s.appointmentRepo.UpdateSnapshot(ctx, &updated); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("applyTransition: failed to persist appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: applyTransition - persist snapshot: %v", ErrInternal, err)
	}

	s.logger.Info("applyTransition: appointment id=%s is now %s", id, updated.Status)
	return &updated, nil
}

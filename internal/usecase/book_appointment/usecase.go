package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	appointmentRepo "github.com/Dramanable/rv-server-sub004/internal/infra/storage/appointment"
	directoryRepo "github.com/Dramanable/rv-server-sub004/internal/infra/storage/directory"
)

// UseCase use case создания бронирования.
// Каждый шаг — жёсткий барьер: первый сбой прерывает бронирование без частичных записей.
type UseCase struct {
	appointmentRepo AppointmentRepository
	detector        ConflictDetector
	directory       DirectoryRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	minNotice       time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepository AppointmentRepository,
	detector ConflictDetector,
	directory DirectoryRepository,
	notifier Notifier,
	txManager TransactionManager,
	minNoticeMinutes int,
	logger Logger,
) *UseCase {
	if minNoticeMinutes <= 0 {
		minNoticeMinutes = domain.DefaultMinNoticeMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepository,
		detector:        detector,
		directory:       directory,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		minNotice:       time.Duration(minNoticeMinutes) * time.Minute,
	}
}

// resolvedEntities результат параллельной загрузки справочных сущностей
type resolvedEntities struct {
	business *directoryRepo.Business
	service  *directoryRepo.Service
	calendar *directoryRepo.Calendar
	staff    *directoryRepo.Staff
}

// Execute выполняет use case создания бронирования.
// Создание записи выполняется в сериализуемой транзакции с повторной проверкой
// конфликтов: выдача слотов советующая и могла устареть к моменту запроса.
// Авторитетная гарантия отсутствия двойного бронирования — ограничение БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: business=%s, calendar=%s, service=%s, start=%s",
		req.BusinessID, req.CalendarID, req.ServiceID, req.Start.Format(time.RFC3339))

	if req.Source == "" {
		req.Source = domain.SourceOnline
	}

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация полей и темпоральных правил (прошлое время и минимальное
	//    предуведомление — отдельные ошибки)
	if err := validateRequest(req, now, uc.minNotice); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	interval, err := domain.NewTimeInterval(req.Start, req.End)
	if err != nil {
		uc.logger.Warn("BookAppointment: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Предварительная проверка конфликтов (советующая; авторитетная проверка
	//    повторяется внутри транзакции)
	if err := uc.checkConflicts(ctx, req, interval); err != nil {
		return nil, err
	}

	// 4. Параллельная загрузка справочных сущностей
	entities, err := uc.resolveEntities(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Бизнес-правила активации и онлайн-доступности
	if err := uc.checkBookingGates(req, entities); err != nil {
		return nil, err
	}

	// 6. Конструируем снапшот бронирования со статусом requested и
	//    зафиксированной ценой услуги
	appt := uc.buildAppointment(req, entities.service, interval, now)

	// 7. Сохраняем в сериализуемой транзакции с повторной проверкой конфликтов
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.checkConflicts(txCtx, req, interval); err != nil {
			return err
		}

		result, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("BookAppointment: constraint rejected insert for calendar=%s", req.CalendarID)
				return fmt.Errorf("%w: %v", ErrSlotConflict, err)
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		created = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%s", created.ID)

	// 8. Отправляем подтверждение. Сбой уведомления не откатывает бронирование:
	//    результат degraded success с notificationSent=false
	sent, err := uc.notifier.SendBookingConfirmation(ctx, created)
	if err != nil {
		uc.logger.Error("BookAppointment: confirmation not sent for appointment id=%s: %v", created.ID, err)
		sent = false
	}

	return &Response{
		Appointment:      created,
		NotificationSent: sent,
	}, nil
}

// checkConflicts запрашивает детектор конфликтов для интервала кандидата
func (uc *UseCase) checkConflicts(ctx context.Context, req *Request, interval domain.TimeInterval) error {
	conflicting, err := uc.detector.FindConflicts(ctx, req.CalendarID, interval, req.StaffID, nil)
	if err != nil {
		uc.logger.Error("BookAppointment: conflict check failed for calendar=%s: %v", req.CalendarID, err)
		return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
	}

	if len(conflicting) == 0 {
		return nil
	}

	// Если запрошен конкретный сотрудник, называем конфликтующее бронирование
	if req.StaffID != nil {
		uc.logger.Warn("BookAppointment: staff=%s busy, conflicts with appointment id=%s",
			req.StaffID, conflicting[0].ID)
		return fmt.Errorf("%w: appointment %s", ErrSlotConflict, conflicting[0].ID)
	}

	uc.logger.Warn("BookAppointment: calendar=%s has %d conflicting appointment(s)",
		req.CalendarID, len(conflicting))
	return ErrSlotConflict
}

// resolveEntities загружает компанию, услугу, календарь и (опционально) сотрудника параллельно
func (uc *UseCase) resolveEntities(ctx context.Context, req *Request) (*resolvedEntities, error) {
	var entities resolvedEntities

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		business, err := uc.directory.GetBusiness(gctx, req.BusinessID)
		if err != nil {
			if errors.Is(err, directoryRepo.ErrBusinessNotFound) {
				return fmt.Errorf("%w: id=%s", ErrBusinessNotFound, req.BusinessID)
			}
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}
		entities.business = business
		return nil
	})

	g.Go(func() error {
		service, err := uc.directory.GetService(gctx, req.ServiceID)
		if err != nil {
			if errors.Is(err, directoryRepo.ErrServiceNotFound) {
				return fmt.Errorf("%w: id=%s", ErrServiceNotFound, req.ServiceID)
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		entities.service = service
		return nil
	})

	g.Go(func() error {
		calendar, err := uc.directory.GetCalendar(gctx, req.CalendarID)
		if err != nil {
			if errors.Is(err, directoryRepo.ErrCalendarNotFound) {
				return fmt.Errorf("%w: id=%s", ErrCalendarNotFound, req.CalendarID)
			}
			return fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
		}
		entities.calendar = calendar
		return nil
	})

	if req.StaffID != nil {
		staffID := *req.StaffID
		g.Go(func() error {
			staff, err := uc.directory.GetStaff(gctx, staffID)
			if err != nil {
				if errors.Is(err, directoryRepo.ErrStaffNotFound) {
					return fmt.Errorf("%w: id=%s", ErrStaffNotFound, staffID)
				}
				return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
			}
			entities.staff = staff
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Warn("BookAppointment: entity resolution failed: %v", err)
		return nil, err
	}

	return &entities, nil
}

// checkBookingGates проверяет бизнес-правила перед созданием бронирования
func (uc *UseCase) checkBookingGates(req *Request, entities *resolvedEntities) error {
	if !entities.business.IsActive {
		uc.logger.Warn("BookAppointment: business id=%s is not active", req.BusinessID)
		return fmt.Errorf("%w: id=%s", ErrBusinessInactive, req.BusinessID)
	}

	if !entities.service.IsActive {
		uc.logger.Warn("BookAppointment: service id=%s is not active", req.ServiceID)
		return fmt.Errorf("%w: id=%s", ErrServiceInactive, req.ServiceID)
	}

	// Услуга должна быть явно разрешена для онлайн-бронирования; ручная запись
	// персоналом этим правилом не ограничивается
	if req.Source == domain.SourceOnline && !entities.service.AllowOnlineBooking {
		uc.logger.Warn("BookAppointment: service id=%s is not bookable online", req.ServiceID)
		return fmt.Errorf("%w: id=%s", ErrServiceNotBookableOnline, req.ServiceID)
	}

	if entities.service.BusinessID != req.BusinessID {
		uc.logger.Warn("BookAppointment: service id=%s does not belong to business id=%s",
			req.ServiceID, req.BusinessID)
		return fmt.Errorf("%w: id=%s", ErrServiceNotFound, req.ServiceID)
	}
	if entities.calendar.BusinessID != req.BusinessID {
		uc.logger.Warn("BookAppointment: calendar id=%s does not belong to business id=%s",
			req.CalendarID, req.BusinessID)
		return fmt.Errorf("%w: id=%s", ErrCalendarNotFound, req.CalendarID)
	}
	if entities.staff != nil && entities.staff.BusinessID != req.BusinessID {
		uc.logger.Warn("BookAppointment: staff id=%s does not belong to business id=%s",
			entities.staff.ID, req.BusinessID)
		return fmt.Errorf("%w: id=%s", ErrStaffNotFound, entities.staff.ID)
	}

	return nil
}

// buildAppointment конструирует снапшот бронирования в статусе requested.
// Цена услуги фиксируется как базовая и итоговая: движок скидок вне этого ядра.
func (uc *UseCase) buildAppointment(
	req *Request,
	service *directoryRepo.Service,
	interval domain.TimeInterval,
	now time.Time,
) *domain.Appointment {
	var bookedBy *domain.BookingDelegate
	if req.BookedBy != nil {
		bookedBy = &domain.BookingDelegate{
			FirstName:    req.BookedBy.FirstName,
			LastName:     req.BookedBy.LastName,
			Relationship: req.BookedBy.Relationship,
		}
	}

	appt := &domain.Appointment{
		ID:         uuid.New(),
		BusinessID: req.BusinessID,
		CalendarID: req.CalendarID,
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		Interval:   interval,
		Client: domain.ClientInfo{
			FirstName:   strings.TrimSpace(req.ClientFirstName),
			LastName:    strings.TrimSpace(req.ClientLastName),
			Email:       strings.TrimSpace(req.ClientEmail),
			Phone:       req.ClientPhone,
			IsNewClient: req.IsNewClient,
			BookedBy:    bookedBy,
		},
		Pricing: domain.PricingSnapshot{
			BaseAmount:    service.BaseAmount,
			TotalAmount:   service.BaseAmount,
			Currency:      service.Currency,
			PaymentStatus: domain.PaymentPending,
		},
		Status:    domain.StatusRequested,
		Source:    req.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Notes != nil && strings.TrimSpace(*req.Notes) != "" {
		withNote := appt.WithNote(strings.TrimSpace(*req.Notes), now)
		appt = &withNote
	}

	return appt
}

package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	directoryRepo "github.com/Dramanable/rv-server-sub004/internal/infra/storage/directory"
)

// UseCase use case выдачи доступных слотов для бронирования.
// Выдача советующая: к моменту бронирования слот мог устареть, повторную
// проверку выполняет оркестратор бронирования.
type UseCase struct {
	appointmentRepo AppointmentRepository
	directory       DirectoryRepository
	windowProvider  WorkingWindowProvider
	timeProvider    TimeProvider
	logger          Logger
	slotMinutes     int
	horizonMonths   int
}

// NewUseCase создает новый экземпляр use case.
// slotDurationMinutes — длительность слота, когда запрос её не задаёт.
func NewUseCase(
	appointmentRepository AppointmentRepository,
	directory DirectoryRepository,
	windowProvider WorkingWindowProvider,
	slotDurationMinutes int,
	horizonMonths int,
	logger Logger,
) *UseCase {
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if horizonMonths <= 0 {
		horizonMonths = domain.DefaultAdvanceHorizonMonths
	}
	return &UseCase{
		appointmentRepo: appointmentRepository,
		directory:       directory,
		windowProvider:  windowProvider,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		slotMinutes:     slotDurationMinutes,
		horizonMonths:   horizonMonths,
	}
}

// Execute выполняет use case генерации слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: calendar=%s, service=%s, mode=%s, reference=%s",
		req.CalendarID, req.ServiceID, req.Mode, req.ReferenceDate.Format(domain.DateFormat))

	// 1. Валидация входных данных; длительность слота из запроса, иначе
	//    сконфигурированная
	if req.SlotDurationMinutes == 0 {
		req.SlotDurationMinutes = uc.slotMinutes
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Параллельная загрузка календаря и услуги
	service, err := uc.resolveEntities(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Разрешаем период просмотра
	periodStart, dayCount := resolvePeriod(req.Mode, req.ReferenceDate)
	periodEnd := periodStart.AddDate(0, 0, dayCount)

	slotDuration := time.Duration(req.SlotDurationMinutes) * time.Minute
	price := service.BaseAmount

	// 5. Генерируем дни периода параллельно и собираем в порядке периода
	days := make([]domain.DaySlots, dayCount)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < dayCount; i++ {
		i := i
		g.Go(func() error {
			date := periodStart.AddDate(0, 0, i)
			open, close := uc.windowProvider.WindowFor(date)

			bookings, err := uc.appointmentRepo.FindByCalendarAndRange(gctx, req.CalendarID, open, close)
			if err != nil {
				return fmt.Errorf("%w: failed to get bookings for %s: %v",
					ErrInternal, date.Format(domain.DateFormat), err)
			}

			days[i] = generateDaySlots(date, open, close, slotDuration, bookings, req.StaffID, &price, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Error("GenerateSlots: %v", err)
		return nil, err
	}

	// 6. Метрики считаются по полному набору кандидатов, до фильтрации
	metrics := domain.CalculateSlotMetrics(days)

	if !req.IncludeUnavailable {
		days = filterAvailable(days)
	}

	uc.logger.Info("GenerateSlots: calendar=%s period=%s..%s total=%d available=%d booked=%d",
		req.CalendarID, periodStart.Format(domain.DateFormat), periodEnd.Format(domain.DateFormat),
		metrics.TotalSlots, metrics.AvailableCount, metrics.BookedCount)

	return &Response{
		CalendarID:  req.CalendarID,
		ServiceID:   req.ServiceID,
		Mode:        req.Mode,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Days:        days,
		Metrics:     metrics,
		// В прошлое листать нельзя: назад можно, только пока начало периода в будущем.
		// Вперед — не дальше горизонта бронирования от текущего момента.
		HasPrevious: periodStart.After(now),
		HasNext:     periodEnd.Before(now.AddDate(0, uc.horizonMonths, 0)),
	}, nil
}

// resolveEntities загружает календарь и услугу параллельно; возвращает услугу
// (её цена попадает в слоты)
func (uc *UseCase) resolveEntities(ctx context.Context, req *Request) (*directoryRepo.Service, error) {
	var service *directoryRepo.Service

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := uc.directory.GetCalendar(gctx, req.CalendarID)
		if err != nil {
			if errors.Is(err, directoryRepo.ErrCalendarNotFound) {
				return fmt.Errorf("%w: id=%s", ErrCalendarNotFound, req.CalendarID)
			}
			return fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
		}
		return nil
	})

	g.Go(func() error {
		s, err := uc.directory.GetService(gctx, req.ServiceID)
		if err != nil {
			if errors.Is(err, directoryRepo.ErrServiceNotFound) {
				return fmt.Errorf("%w: id=%s", ErrServiceNotFound, req.ServiceID)
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		service = s
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Warn("GenerateSlots: entity resolution failed: %v", err)
		return nil, err
	}

	return service, nil
}

package generate_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	directoryRepo "github.com/Dramanable/rv-server-sub004/internal/infra/storage/directory"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeStore struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeStore) FindByCalendarAndRange(
	ctx context.Context,
	calendarID uuid.UUID,
	from, to time.Time,
) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}

	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.CalendarID != calendarID {
			continue
		}
		if appt.Interval.Start.Before(to) && appt.Interval.End.After(from) {
			result = append(result, appt)
		}
	}
	return result, nil
}

type fakeDirectory struct {
	service  *directoryRepo.Service
	calendar *directoryRepo.Calendar
}

func (f *fakeDirectory) GetCalendar(ctx context.Context, id uuid.UUID) (*directoryRepo.Calendar, error) {
	if f.calendar == nil || f.calendar.ID != id {
		return nil, directoryRepo.ErrCalendarNotFound
	}
	return f.calendar, nil
}

func (f *fakeDirectory) GetService(ctx context.Context, id uuid.UUID) (*directoryRepo.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, directoryRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fixture struct {
	useCase   *UseCase
	store     *fakeStore
	directory *fakeDirectory
	now       time.Time
}

// вторник 1 сентября 2026, 08:00 — до открытия рабочего окна
var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	directory := &fakeDirectory{
		service: &directoryRepo.Service{
			ID:         uuid.New(),
			Name:       "Consultation",
			IsActive:   true,
			BaseAmount: 50,
			Currency:   "EUR",
		},
		calendar: &directoryRepo.Calendar{ID: uuid.New(), Name: "Salle 1", IsActive: true},
	}

	store := &fakeStore{}

	useCase := NewUseCase(
		store,
		directory,
		MustFixedWindowProvider("09:00", "18:00"),
		30,
		3,
		nopLogger{},
	)
	useCase.timeProvider = fixedTime{now: testNow}

	return &fixture{
		useCase:   useCase,
		store:     store,
		directory: directory,
		now:       testNow,
	}
}

func (f *fixture) request() *Request {
	return &Request{
		CalendarID:    f.directory.calendar.ID,
		ServiceID:     f.directory.service.ID,
		Mode:          ModeDay,
		ReferenceDate: f.now,
	}
}

func (f *fixture) book(startHour, startMinute, durationMinutes int, status domain.AppointmentStatus) *domain.Appointment {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	start := day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMinute)*time.Minute)
	appt := &domain.Appointment{
		ID:         uuid.New(),
		CalendarID: f.directory.calendar.ID,
		Interval:   domain.TimeInterval{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)},
		Status:     status,
	}
	f.store.appointments = append(f.store.appointments, appt)
	return appt
}

func TestExecute_EmptyDay(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// окно 09:00-18:00 по 30 минут = 18 слотов, всё свободно
	require.Len(t, resp.Days, 1)
	assert.Len(t, resp.Days[0].Slots, 18)
	assert.Equal(t, 18, resp.Metrics.TotalSlots)
	assert.Equal(t, 18, resp.Metrics.AvailableCount)
	assert.Equal(t, 0, resp.Metrics.BookedCount)
	assert.Equal(t, 0.0, resp.Metrics.UtilizationRate)
	assert.Equal(t, "2026-09-01", resp.Days[0].Date)
}

func TestExecute_OccupiedSlotsAreFilteredByDefault(t *testing.T) {
	f := newFixture(t)
	f.book(10, 0, 30, domain.StatusConfirmed)

	resp, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// метрики считаются по полному набору кандидатов, до фильтрации
	assert.Equal(t, 18, resp.Metrics.TotalSlots)
	assert.Equal(t, 17, resp.Metrics.AvailableCount)
	assert.Equal(t, 1, resp.Metrics.BookedCount)
	assert.Len(t, resp.Days[0].Slots, 17)

	for _, slot := range resp.Days[0].Slots {
		assert.True(t, slot.Available)
	}
}

func TestExecute_IncludeUnavailableCarriesReasons(t *testing.T) {
	f := newFixture(t)
	f.book(10, 0, 30, domain.StatusConfirmed)

	req := f.request()
	req.IncludeUnavailable = true

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Days[0].Slots, 18)

	occupied := resp.Days[0].Slots[2] // 10:00-10:30
	assert.False(t, occupied.Available)
	assert.Equal(t, domain.ReasonOccupied, occupied.UnavailableReason)
}

func TestExecute_PastSlotsMarked(t *testing.T) {
	f := newFixture(t)
	f.useCase.timeProvider = fixedTime{now: time.Date(2026, 9, 1, 10, 15, 0, 0, time.UTC)}

	req := f.request()
	req.IncludeUnavailable = true

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)

	slots := resp.Days[0].Slots
	// 09:00, 09:30 начались в прошлом; 10:00 уже начался и тоже прошлый
	for _, slot := range slots[:3] {
		assert.False(t, slot.Available)
		assert.Equal(t, domain.ReasonPast, slot.UnavailableReason)
	}
	// 10:30 строго в будущем
	assert.True(t, slots[3].Available)
}

func TestExecute_FullyBookedDay(t *testing.T) {
	f := newFixture(t)
	for hour := 9; hour < 18; hour++ {
		f.book(hour, 0, 60, domain.StatusConfirmed)
	}

	resp, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, 18, resp.Metrics.BookedCount)
	assert.Equal(t, 0, resp.Metrics.AvailableCount)
	assert.Equal(t, 100.0, resp.Metrics.UtilizationRate)
	assert.Empty(t, resp.Days[0].Slots)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture(t)
	f.book(10, 0, 30, domain.StatusCancelled)

	resp, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, 18, resp.Metrics.AvailableCount)
}

func TestExecute_StaffScopedSlots(t *testing.T) {
	f := newFixture(t)
	otherStaff := uuid.New()
	appt := f.book(10, 0, 30, domain.StatusConfirmed)
	appt.StaffID = &otherStaff

	requested := uuid.New()
	req := f.request()
	req.StaffID = &requested

	// занятость другого сотрудника не блокирует слоты запрошенного
	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 18, resp.Metrics.AvailableCount)
}

func TestExecute_SlotsCarryPrice(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)

	slot := resp.Days[0].Slots[0]
	require.NotNil(t, slot.Price)
	assert.Equal(t, 50.0, *slot.Price)
}

func TestExecute_WeekMode(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.Mode = ModeWeek

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	// неделя ISO начинается с понедельника
	assert.Equal(t, "2026-08-31", resp.Days[0].Date)
	assert.Equal(t, "2026-09-06", resp.Days[6].Date)
}

func TestExecute_NextWeekAnchorsToReferenceDate(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.Mode = ModeNextWeek
	// референсная дата через две недели от "сейчас"
	req.ReferenceDate = f.now.AddDate(0, 0, 14)

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	// следующая неделя относительно референсной даты, а не текущего момента
	assert.Equal(t, "2026-09-21", resp.Days[0].Date)
}

func TestExecute_Navigation(t *testing.T) {
	f := newFixture(t)

	// текущий день: назад листать нельзя, вперед можно
	resp, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.False(t, resp.HasPrevious)
	assert.True(t, resp.HasNext)

	// будущий день внутри горизонта
	req := f.request()
	req.ReferenceDate = f.now.AddDate(0, 0, 7)
	resp, err = f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.HasPrevious)
	assert.True(t, resp.HasNext)

	// за горизонтом бронирования дальше листать нельзя
	req = f.request()
	req.ReferenceDate = f.now.AddDate(0, 4, 0)
	resp, err = f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.HasNext)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.CalendarID = uuid.Nil
	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = f.request()
	req.Mode = "month"
	_, err = f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = f.request()
	req.SlotDurationMinutes = 3
	_, err = f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CustomSlotDuration(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.SlotDurationMinutes = 60

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Metrics.TotalSlots)
}

func TestExecute_ConfiguredSlotDurationIsDefault(t *testing.T) {
	f := newFixture(t)
	// сконфигурированная длительность применяется, когда запрос её не задаёт
	f.useCase.slotMinutes = 60

	resp, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Metrics.TotalSlots)

	// явная длительность из запроса имеет приоритет
	req := f.request()
	req.SlotDurationMinutes = 30
	resp, err = f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 18, resp.Metrics.TotalSlots)
}

func TestExecute_UnknownEntities(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.CalendarID = uuid.New()
	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCalendarNotFound)

	req = f.request()
	req.ServiceID = uuid.New()
	_, err = f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	f.store.err = errors.New("connection reset")

	_, err := f.useCase.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestResolvePeriod(t *testing.T) {
	// вторник
	reference := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	start, days := resolvePeriod(ModeDay, reference)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 1, days)

	start, days = resolvePeriod(ModeWeek, reference)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 7, days)

	start, days = resolvePeriod(ModeNextWeek, reference)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 7, days)

	// понедельник остаётся началом своей недели
	monday := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	start, _ = resolvePeriod(ModeWeek, monday)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), start)

	// воскресенье принадлежит неделе своего понедельника
	sunday := time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)
	start, _ = resolvePeriod(ModeWeek, sunday)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), start)
}

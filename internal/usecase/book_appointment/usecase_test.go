package book_appointment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	appointmentRepo "github.com/Dramanable/rv-server-sub004/internal/infra/storage/appointment"
	directoryRepo "github.com/Dramanable/rv-server-sub004/internal/infra/storage/directory"
	"github.com/Dramanable/rv-server-sub004/internal/service/conflicts"
	"github.com/Dramanable/rv-server-sub004/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// fakeStore хранит бронирования в памяти и, как настоящее хранилище,
// отклоняет пересекающиеся интервалы одного календаря
type fakeStore struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	createErr    error
}

func (f *fakeStore) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	for _, existing := range f.appointments {
		if existing.CalendarID != appt.CalendarID || !existing.BlocksCalendar() {
			continue
		}
		if existing.Interval.Overlaps(appt.Interval) {
			return nil, appointmentRepo.ErrSlotTaken
		}
	}

	created := *appt
	f.appointments = append(f.appointments, &created)
	return &created, nil
}

func (f *fakeStore) FindConflicting(
	ctx context.Context,
	calendarID uuid.UUID,
	interval domain.TimeInterval,
	excludeID *uuid.UUID,
) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.CalendarID != calendarID || appt.Status == domain.StatusCancelled {
			continue
		}
		if appt.Interval.Overlaps(interval) {
			result = append(result, appt)
		}
	}
	return result, nil
}

type fakeDirectory struct {
	business *directoryRepo.Business
	service  *directoryRepo.Service
	calendar *directoryRepo.Calendar
	staff    *directoryRepo.Staff
}

func (f *fakeDirectory) GetBusiness(ctx context.Context, id uuid.UUID) (*directoryRepo.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, directoryRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f *fakeDirectory) GetService(ctx context.Context, id uuid.UUID) (*directoryRepo.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, directoryRepo.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeDirectory) GetCalendar(ctx context.Context, id uuid.UUID) (*directoryRepo.Calendar, error) {
	if f.calendar == nil || f.calendar.ID != id {
		return nil, directoryRepo.ErrCalendarNotFound
	}
	return f.calendar, nil
}

func (f *fakeDirectory) GetStaff(ctx context.Context, id uuid.UUID) (*directoryRepo.Staff, error) {
	if f.staff == nil || f.staff.ID != id {
		return nil, directoryRepo.ErrStaffNotFound
	}
	return f.staff, nil
}

type fakeNotifier struct {
	sent bool
	err  error
}

func (f *fakeNotifier) SendBookingConfirmation(ctx context.Context, appt *domain.Appointment) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.sent = true
	return true, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	useCase   *UseCase
	store     *fakeStore
	directory *fakeDirectory
	notifier  *fakeNotifier
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	businessID := uuid.New()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	directory := &fakeDirectory{
		business: &directoryRepo.Business{ID: uuid.New(), Name: "Clinique du Parc", IsActive: true, Currency: "EUR"},
		service: &directoryRepo.Service{
			ID:                 uuid.New(),
			Name:               "Consultation",
			IsActive:           true,
			AllowOnlineBooking: true,
			BaseAmount:         50,
			Currency:           "EUR",
			DurationMinutes:    30,
		},
		calendar: &directoryRepo.Calendar{ID: uuid.New(), Name: "Salle 1", IsActive: true},
		staff:    &directoryRepo.Staff{ID: uuid.New(), FirstName: "Marie", LastName: "Dupont", IsActive: true},
	}
	directory.business.ID = businessID
	directory.service.BusinessID = businessID
	directory.calendar.BusinessID = businessID
	directory.staff.BusinessID = businessID

	store := &fakeStore{}
	notifier := &fakeNotifier{}

	useCase := NewUseCase(
		store,
		conflicts.NewDetector(store, nopLogger{}),
		directory,
		notifier,
		passthroughTxManager{},
		120,
		nopLogger{},
	)
	useCase.timeProvider = fixedTime{now: now}

	return &fixture{
		useCase:   useCase,
		store:     store,
		directory: directory,
		notifier:  notifier,
		now:       now,
	}
}

func (f *fixture) request() *Request {
	return &Request{
		BusinessID:      f.directory.business.ID,
		CalendarID:      f.directory.calendar.ID,
		ServiceID:       f.directory.service.ID,
		Start:           f.now.Add(3 * time.Hour),
		End:             f.now.Add(3*time.Hour + 30*time.Minute),
		ClientFirstName: "Jean",
		ClientLastName:  "Martin",
		ClientEmail:     "jean.martin@example.com",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)

	appt := resp.Appointment
	assert.Equal(t, domain.StatusRequested, appt.Status)
	assert.Equal(t, domain.SourceOnline, appt.Source)
	assert.Equal(t, 50.0, appt.Pricing.BaseAmount)
	assert.Equal(t, 50.0, appt.Pricing.TotalAmount)
	assert.Equal(t, "EUR", appt.Pricing.Currency)
	assert.Equal(t, domain.PaymentPending, appt.Pricing.PaymentStatus)
	assert.True(t, resp.NotificationSent)
	assert.Len(t, f.store.appointments, 1)
}

func TestExecute_InitialNote(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.Notes = ptr.Ptr("first visit, allergy to latex")

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Appointment.Notes, 1)
	assert.Equal(t, "first visit, allergy to latex", resp.Appointment.Notes[0].Text)
}

func TestExecute_Delegate(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.BookedBy = &Delegate{FirstName: "Claire", LastName: "Martin", Relationship: "parent"}

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Appointment.Client.BookedBy)
	assert.Equal(t, "parent", resp.Appointment.Client.BookedBy.Relationship)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// тот же интервал второй раз
	_, err = f.useCase.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, f.store.appointments, 1)
}

func TestExecute_BackToBackIntervalsDoNotConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)

	req := f.request()
	req.Start = f.now.Add(3*time.Hour + 30*time.Minute)
	req.End = f.now.Add(4 * time.Hour)

	_, err = f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, f.store.appointments, 2)
}

func TestExecute_StaffConflictNamesAppointment(t *testing.T) {
	f := newFixture(t)

	first := f.request()
	first.StaffID = &f.directory.staff.ID
	resp, err := f.useCase.Execute(context.Background(), first)
	require.NoError(t, err)

	second := f.request()
	second.StaffID = &f.directory.staff.ID
	_, err = f.useCase.Execute(context.Background(), second)
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Contains(t, err.Error(), resp.Appointment.ID.String())
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.Start = f.now.Add(-time.Hour)
	req.End = f.now.Add(-30 * time.Minute)

	_, err := f.useCase.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrStartInPast)
	assert.NotErrorIs(t, err, ErrInsufficientNotice)
}

func TestExecute_InsufficientNotice(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	// в будущем, но меньше чем за 2 часа
	req.Start = f.now.Add(time.Hour)
	req.End = f.now.Add(time.Hour + 30*time.Minute)

	_, err := f.useCase.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInsufficientNotice)
	assert.NotErrorIs(t, err, ErrStartInPast)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing business", func(req *Request) { req.BusinessID = uuid.Nil }},
		{"missing calendar", func(req *Request) { req.CalendarID = uuid.Nil }},
		{"start after end", func(req *Request) { req.Start, req.End = req.End, req.Start }},
		{"missing first name", func(req *Request) { req.ClientFirstName = "  " }},
		{"bad email", func(req *Request) { req.ClientEmail = "not-an-email" }},
		{"bad phone", func(req *Request) { req.ClientPhone = ptr.Ptr("abc") }},
		{"delegate without relationship", func(req *Request) {
			req.BookedBy = &Delegate{FirstName: "Claire", LastName: "Martin"}
		}},
		{"notes too long", func(req *Request) {
			req.Notes = ptr.Ptr(strings.Repeat("x", domain.MaxNotesLength+1))
		}},
		{"unknown source", func(req *Request) { req.Source = "vip" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request()
			tt.mutate(req)

			_, err := f.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.store.appointments)
		})
	}
}

func TestExecute_BookingGates(t *testing.T) {
	t.Run("inactive business", func(t *testing.T) {
		f := newFixture(t)
		f.directory.business.IsActive = false

		_, err := f.useCase.Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrBusinessInactive)
	})

	t.Run("inactive service", func(t *testing.T) {
		f := newFixture(t)
		f.directory.service.IsActive = false

		_, err := f.useCase.Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrServiceInactive)
	})

	t.Run("online booking disabled rejects online source", func(t *testing.T) {
		f := newFixture(t)
		f.directory.service.AllowOnlineBooking = false

		_, err := f.useCase.Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrServiceNotBookableOnline)
	})

	t.Run("online booking disabled still allows manual source", func(t *testing.T) {
		f := newFixture(t)
		f.directory.service.AllowOnlineBooking = false

		req := f.request()
		req.Source = domain.SourceManual

		_, err := f.useCase.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("service of another business", func(t *testing.T) {
		f := newFixture(t)
		f.directory.service.BusinessID = uuid.New()

		_, err := f.useCase.Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestExecute_UnknownEntities(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.ServiceID = uuid.New()

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = f.request()
	staffID := uuid.New()
	req.StaffID = &staffID

	_, err = f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_NotificationFailureIsDegradedSuccess(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("notify service unavailable")

	resp, err := f.useCase.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.False(t, resp.NotificationSent)
	// бронирование сохранено несмотря на сбой уведомления
	assert.Len(t, f.store.appointments, 1)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)

	const attempts = 20

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			_, results[i] = f.useCase.Execute(context.Background(), f.request())
		}()
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// ровно одна попытка выигрывает слот
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
	assert.Len(t, f.store.appointments, 1)
}

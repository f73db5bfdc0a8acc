package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
	"github.com/Dramanable/rv-server-sub004/pkg/dbmetrics"
	"github.com/Dramanable/rv-server-sub004/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие, что слот уже занят:
// уникальный индекс или EXCLUDE-ограничение на (calendar_id, staff_id, интервал)
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

var appointmentColumns = []string{
	"id",
	"business_id",
	"calendar_id",
	"service_id",
	"staff_id",
	"start_time",
	"end_time",
	"client_first_name",
	"client_last_name",
	"client_email",
	"client_phone",
	"is_new_client",
	"delegate_first_name",
	"delegate_last_name",
	"delegate_relationship",
	"base_amount",
	"total_amount",
	"currency",
	"payment_status",
	"status",
	"source",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Если в контексте передана активная транзакция (через dbmetrics.WithExecutor), использует её.
//
// Ограничение БД на пересечение интервалов (EXCLUDE USING gist) — авторитетная
// гарантия отсутствия двойного бронирования: прикладная проверка конфликтов
// советующая и может устареть между чтением и записью.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	notes, err := encodeNotes(appt.Notes)
	if err != nil {
		return nil, err
	}

	var delegateFirstName, delegateLastName, delegateRelationship *string
	if appt.Client.BookedBy != nil {
		delegateFirstName = &appt.Client.BookedBy.FirstName
		delegateLastName = &appt.Client.BookedBy.LastName
		delegateRelationship = &appt.Client.BookedBy.Relationship
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"business_id",
			"calendar_id",
			"service_id",
			"staff_id",
			"start_time",
			"end_time",
			"client_first_name",
			"client_last_name",
			"client_email",
			"client_phone",
			"is_new_client",
			"delegate_first_name",
			"delegate_last_name",
			"delegate_relationship",
			"base_amount",
			"total_amount",
			"currency",
			"payment_status",
			"status",
			"source",
			"notes",
		).
		Values(
			appt.ID,
			appt.BusinessID,
			appt.CalendarID,
			appt.ServiceID,
			appt.StaffID,
			appt.Interval.Start,
			appt.Interval.End,
			appt.Client.FirstName,
			appt.Client.LastName,
			appt.Client.Email,
			appt.Client.Phone,
			appt.Client.IsNewClient,
			delegateFirstName,
			delegateLastName,
			delegateRelationship,
			appt.Pricing.BaseAmount,
			appt.Pricing.TotalAmount,
			appt.Pricing.Currency,
			appt.Pricing.PaymentStatus,
			appt.Status,
			appt.Source,
			notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isSlotConstraintViolation(err) {
			return nil, fmt.Errorf("%w: calendar=%s", ErrSlotTaken, appt.CalendarID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	created := *appt
	created.CreatedAt = createdAt
	created.UpdatedAt = updatedAt

	return &created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// FindConflicting находит неотменённые бронирования календаря, пересекающиеся
// с интервалом [start, end). Граничащие интервалы пересечением не считаются,
// поэтому сравнения строгие.
func (r *Repository) FindConflicting(
	ctx context.Context,
	calendarID uuid.UUID,
	interval domain.TimeInterval,
	excludeID *uuid.UUID,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"start_time": interval.End}).
		Where(squirrel.Gt{"end_time": interval.Start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicting - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryAppointments(ctx, executor, query, args, "FindConflicting")
}

// FindByCalendarAndRange получает все бронирования календаря, пересекающиеся с диапазоном [from, to)
func (r *Repository) FindByCalendarAndRange(
	ctx context.Context,
	calendarID uuid.UUID,
	from, to time.Time,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByCalendarAndRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryAppointments(ctx, executor, query, args, "FindByCalendarAndRange")
}

// UpdateSnapshot сохраняет изменяемую часть снапшота (статус, заметки, updated_at)
func (r *Repository) UpdateSnapshot(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	notes, err := encodeNotes(appt.Notes)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", appt.Status).
		Set("payment_status", appt.Pricing.PaymentStatus).
		Set("notes", notes).
		Set("updated_at", appt.UpdatedAt).
		Where(squirrel.Eq{"id": appt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSnapshot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSnapshot - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSnapshot - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) queryAppointments(
	ctx context.Context,
	executor DBExecutor,
	query string,
	args []interface{},
	op string,
) ([]*domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var appointments []*domain.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt                 domain.Appointment
		staffID              uuid.NullUUID
		phone                sql.NullString
		delegateFirstName    sql.NullString
		delegateLastName     sql.NullString
		delegateRelationship sql.NullString
		notes                []byte
		start, end           time.Time
	)

	err := row.Scan(
		&appt.ID,
		&appt.BusinessID,
		&appt.CalendarID,
		&appt.ServiceID,
		&staffID,
		&start,
		&end,
		&appt.Client.FirstName,
		&appt.Client.LastName,
		&appt.Client.Email,
		&phone,
		&appt.Client.IsNewClient,
		&delegateFirstName,
		&delegateLastName,
		&delegateRelationship,
		&appt.Pricing.BaseAmount,
		&appt.Pricing.TotalAmount,
		&appt.Pricing.Currency,
		&appt.Pricing.PaymentStatus,
		&appt.Status,
		&appt.Source,
		&notes,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.Interval = domain.TimeInterval{Start: start, End: end}

	if staffID.Valid {
		id := staffID.UUID
		appt.StaffID = &id
	}
	if phone.Valid {
		p := phone.String
		appt.Client.Phone = &p
	}
	if delegateFirstName.Valid || delegateLastName.Valid || delegateRelationship.Valid {
		appt.Client.BookedBy = &domain.BookingDelegate{
			FirstName:    delegateFirstName.String,
			LastName:     delegateLastName.String,
			Relationship: delegateRelationship.String,
		}
	}

	decoded, err := decodeNotes(notes)
	if err != nil {
		return nil, err
	}
	appt.Notes = decoded

	return &appt, nil
}

func isSlotConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pgUniqueViolation || code == pgExclusionViolation
	}
	return false
}

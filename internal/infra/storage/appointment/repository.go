package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/pkg/dbmetrics"
	"github.com/devsign-cl/appointment-service/pkg/psqlbuilder"
)

// uniqueConstraintName is the uniqueness backstop on
// (employee_id, date, start_time); see migrations/001_init.sql
const uniqueConstraintName = "uniq_appointment_employee_start"

const pgUniqueViolation = "23505"

var appointmentColumns = []string{
	"id",
	"business_id",
	"client_id",
	"service_id",
	"employee_id",
	"date",
	"start_time",
	"end_time",
	"status",
	"notes",
	"service_name",
	"service_price",
	"service_duration_minutes",
	"client_name",
	"client_email",
	"client_phone",
	"employee_name",
	"google_calendar_event_id",
	"created_at",
	"updated_at",
}

// Repository is the Postgres repository for appointments
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new appointment repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment. If the context carries an active
// transaction it is used, which is how the create use cases keep the
// conflict check and the insert in one serializable transaction.
// A violation of the (employee_id, date, start_time) unique index is
// reported as ErrDuplicateSlot.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"business_id",
			"client_id",
			"service_id",
			"employee_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"notes",
			"service_name",
			"service_price",
			"service_duration_minutes",
			"client_name",
			"client_email",
			"client_phone",
			"employee_name",
		).
		Values(
			appointment.BusinessID,
			appointment.ClientID,
			appointment.ServiceID,
			appointment.EmployeeID,
			appointment.Date,
			appointment.StartTime,
			appointment.EndTime,
			appointment.Status,
			appointment.Notes,
			appointment.ServiceName,
			appointment.ServicePrice,
			appointment.ServiceDurationMinutes,
			appointment.ClientName,
			appointment.ClientEmail,
			appointment.ClientPhone,
			appointment.EmployeeName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID fetches an appointment by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// ListByEmployeeAndDate returns the employee's appointments on the given
// date, ordered by start time. Inside a transaction the rows are locked
// with FOR UPDATE, which is the conflict check path of the create and
// update use cases; callers skip non-blocking statuses themselves.
func (r *Repository) ListByEmployeeAndDate(
	ctx context.Context,
	employeeID int64,
	date time.Time,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmployeeAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmployeeAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByBusinessAndDate returns a business's appointments on the given
// date, optionally narrowed to one employee. Used by the public
// available-times and employee-availability queries.
func (r *Repository) ListByBusinessAndDate(
	ctx context.Context,
	businessID int64,
	date time.Time,
	employeeID *int64,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC")

	if employeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": *employeeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusinessAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusinessAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListWithFilter returns appointments matching the management filter
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		OrderBy("date ASC, start_time ASC")

	if filter.BusinessID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"business_id": *filter.BusinessID})
	}
	if filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": *filter.EmployeeID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByDateAndStatuses returns all appointments on the given date whose
// status is in statuses, across all businesses. Used by the reminder batch.
func (r *Repository) ListByDateAndStatuses(
	ctx context.Context,
	date time.Time,
	statuses []domain.AppointmentStatus,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		OrderBy("business_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateAndStatuses - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateAndStatuses - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update rewrites the mutable fields of an appointment and returns the
// fresh row. A violation of the uniqueness backstop is reported as
// ErrDuplicateSlot, mirroring Create.
func (r *Repository) Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("client_id", appointment.ClientID).
		Set("service_id", appointment.ServiceID).
		Set("employee_id", appointment.EmployeeID).
		Set("date", appointment.Date).
		Set("start_time", appointment.StartTime).
		Set("end_time", appointment.EndTime).
		Set("status", appointment.Status).
		Set("notes", appointment.Notes).
		Set("service_name", appointment.ServiceName).
		Set("service_price", appointment.ServicePrice).
		Set("service_duration_minutes", appointment.ServiceDurationMinutes).
		Set("client_name", appointment.ClientName).
		Set("client_email", appointment.ClientEmail).
		Set("client_phone", appointment.ClientPhone).
		Set("employee_name", appointment.EmployeeName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appointment.ID}).
		Suffix("RETURNING " + strings.Join(appointmentColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// UpdateStatus changes only the status of an appointment and returns the
// fresh row
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(appointmentColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// UpdateCalendarEventID persists the external calendar event handle.
// The handle must survive other edits, so nothing else is touched here.
func (r *Repository) UpdateCalendarEventID(ctx context.Context, id int64, eventID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("google_calendar_event_id", eventID).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCalendarEventID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCalendarEventID - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "UpdateCalendarEventID")
}

// Delete removes an appointment (hard delete, used by the hard-cancel flow)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "Delete")
}

func requireRowsAffected(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == uniqueConstraintName
	}
	return false
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.BusinessID,
		&appointment.ClientID,
		&appointment.ServiceID,
		&appointment.EmployeeID,
		&appointment.Date,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.Status,
		&appointment.Notes,
		&appointment.ServiceName,
		&appointment.ServicePrice,
		&appointment.ServiceDurationMinutes,
		&appointment.ClientName,
		&appointment.ClientEmail,
		&appointment.ClientPhone,
		&appointment.EmployeeName,
		&appointment.GoogleCalendarEventID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

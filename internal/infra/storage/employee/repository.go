package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/pkg/dbmetrics"
	"github.com/devsign-cl/appointment-service/pkg/psqlbuilder"
)

var employeeColumns = []string{
	"id",
	"business_id",
	"first_name",
	"last_name",
	"email",
	"google_calendar_id",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository is the Postgres repository for employees
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new employee repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches an employee by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	employee, err := scanEmployee(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	return employee, nil
}

// ListByBusiness returns the employees of a business, optionally only the
// active ones
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("last_name ASC, first_name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// ListWithoutCalendar returns active employees lacking an external calendar.
// Used by the setup-calendars command.
func (r *Repository) ListWithoutCalendar(ctx context.Context) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Eq{"google_calendar_id": nil}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWithoutCalendar - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithoutCalendar - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// ListActive returns all active employees across businesses.
// Used by the setup-calendars command in --force mode.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// UpdateCalendarID persists the external calendar handle on the employee.
// The handle is written alone so concurrent edits to other fields never
// clobber it.
func (r *Repository) UpdateCalendarID(ctx context.Context, id int64, calendarID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("employees").
		Set("google_calendar_id", calendarID).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCalendarID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCalendarID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCalendarID - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var employee domain.Employee
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&employee.ID,
		&employee.BusinessID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.GoogleCalendarID,
		&employee.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	employee.CreatedAt = createdAt.Time
	employee.UpdatedAt = updatedAt.Time

	return &employee, nil
}

func scanEmployees(rows *sql.Rows) ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0)

	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEmployees - scan row: %v", ErrScanRow, err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEmployees - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}

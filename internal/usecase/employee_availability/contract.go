package employee_availability

import (
	"context"
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

// AppointmentRepository lists the booked day
type AppointmentRepository interface {
	ListByBusinessAndDate(ctx context.Context, businessID int64, date time.Time, employeeID *int64) ([]*domain.Appointment, error)
}

// ServiceRepository resolves the service whose duration sizes the window
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// EmployeeRepository lists the business's active employees
type EmployeeRepository interface {
	ListByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Employee, error)
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

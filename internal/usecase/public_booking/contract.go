package public_booking

import (
	"context"
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

// AppointmentRepository is the storage surface this use case needs
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	ListByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) ([]*domain.Appointment, error)
}

// BusinessRepository resolves the business from its public slug
type BusinessRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
}

// ServiceRepository resolves the booked service
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// EmployeeRepository resolves the chosen employee
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// ClientRepository looks clients up by the (business, email) pair and
// creates them on first booking
type ClientRepository interface {
	GetByEmail(ctx context.Context, businessID int64, email string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// TransactionManager runs the slot check and insert atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Dispatcher hands the committed appointment to the side-effect pipeline
type Dispatcher interface {
	AppointmentCreated(appointment *domain.Appointment)
}

// TimeProvider returns the current time (injectable for tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

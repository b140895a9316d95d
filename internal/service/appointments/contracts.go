package appointments

import (
	"context"
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

// AppointmentRepository is the storage surface for management reads and
// destructive operations
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// Dispatcher hands status changes and deletions to the side-effect pipeline
type Dispatcher interface {
	AppointmentUpdated(old, updated *domain.Appointment)
	AppointmentDeleted(appointment *domain.Appointment)
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

package get_available_times

import (
	"context"
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

// AppointmentRepository lists the booked day
type AppointmentRepository interface {
	ListByBusinessAndDate(ctx context.Context, businessID int64, date time.Time, employeeID *int64) ([]*domain.Appointment, error)
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

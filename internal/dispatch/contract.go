package dispatch

import (
	"context"

	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/internal/integrations/googlecalendar"
)

// CalendarSync is the external calendar surface the pipeline drives
type CalendarSync interface {
	CreateEmployeeCalendar(ctx context.Context, employeeName, employeeEmail string) (string, error)
	InsertEvent(ctx context.Context, calendarID string, appointment *domain.Appointment) (*googlecalendar.Event, error)
	UpdateEvent(ctx context.Context, calendarID, eventID string, appointment *domain.Appointment) (*googlecalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// Notifier is the notification surface the pipeline drives
type Notifier interface {
	NotifyCreated(ctx context.Context, appointment *domain.Appointment) error
	NotifyStatusChanged(ctx context.Context, appointment *domain.Appointment, old, new domain.AppointmentStatus) error
}

// EmployeeStore reads and persists the employee calendar handle
type EmployeeStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	UpdateCalendarID(ctx context.Context, id int64, calendarID string) error
}

// AppointmentStore persists the event handle after an insert
type AppointmentStore interface {
	UpdateCalendarEventID(ctx context.Context, id int64, eventID string) error
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics is the pipeline's metrics surface
type Metrics interface {
	IncDispatchTask(kind string)
	IncDispatchBranch(branch, outcome string)
	IncDispatchDropped()
	SetDispatchQueueDepth(depth int)
}

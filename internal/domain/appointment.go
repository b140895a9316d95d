package domain

import (
	"time"

	"github.com/devsign-cl/appointment-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a service appointment in the system
type Appointment struct {
	ID         int64
	BusinessID int64
	ClientID   int64
	ServiceID  int64
	EmployeeID int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    AppointmentStatus
	Notes     *string

	// Denormalized data for history, calendar events and notifications
	ServiceName            string
	ServicePrice           float64
	ServiceDurationMinutes int
	ClientName             string
	ClientEmail            string
	ClientPhone            *string
	EmployeeName           string

	// External handle, set by the dispatch pipeline after the event is created
	GoogleCalendarEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidStatus reports whether s is a known appointment status
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// BlocksSlot reports whether the appointment occupies its time slot.
// Cancelled and completed appointments do not participate in conflict checks.
func (a *Appointment) BlocksSlot() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCompleted reports whether the appointment reached the completed state.
// Completed appointments are immutable.
func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change from the current status
// to newStatus is permitted. Nothing transitions out of completed, and only
// pending or confirmed appointments may become completed. The remaining
// statuses stay mutually reachable so managers can correct mistakes.
func (a *Appointment) CanTransitionTo(newStatus AppointmentStatus) bool {
	if !IsValidStatus(newStatus) {
		return false
	}
	if a.Status == newStatus {
		return true
	}
	if a.Status == StatusCompleted {
		return false
	}
	if newStatus == StatusCompleted {
		return a.Status == StatusPending || a.Status == StatusConfirmed
	}
	return true
}

// AppointmentsFilter filters appointment listings
type AppointmentsFilter struct {
	BusinessID *int64 // nil = all businesses (superuser only)
	EmployeeID *int64
	ClientID   *int64
	Status     *AppointmentStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

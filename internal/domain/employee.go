package domain

import "time"

// Employee is a user who performs services and receives appointments
type Employee struct {
	ID         int64
	BusinessID int64
	FirstName  string
	LastName   string
	Email      string
	// GoogleCalendarID is lazily populated: absent until the first
	// appointment dispatch (or the setup command) provisions a calendar
	GoogleCalendarID *string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// HasCalendar reports whether an external calendar has been provisioned
func (e *Employee) HasCalendar() bool {
	return e.GoogleCalendarID != nil && *e.GoogleCalendarID != ""
}

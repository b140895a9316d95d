package models

import (
	"errors"
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

var (
	// ErrInvalidStatus is returned when an unknown status filter is given
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidPeriod is returned when a period shorthand is not week or month
	ErrInvalidPeriod = errors.New("invalid period, expected week or month")
)

// Scope is the caller's visibility, resolved from the auth headers.
// Superusers see every business; everyone else is pinned to one.
type Scope struct {
	BusinessID int64
	Superuser  bool
}

// Covers reports whether the scope may touch a resource of businessID
func (s Scope) Covers(businessID int64) bool {
	return s.Superuser || s.BusinessID == businessID
}

// ListRequest filters a management listing
type ListRequest struct {
	Scope      Scope
	EmployeeID *int64
	ClientID   *int64
	Status     *string
	StartDate  *time.Time
	EndDate    *time.Time
	Period     *string // "week" or "month", overrides StartDate/EndDate
}

// ToDomainFilter converts the request into a storage filter.
// The period shorthand is resolved against now before this point.
func (r *ListRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		EmployeeID: r.EmployeeID,
		ClientID:   r.ClientID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}

	if !r.Scope.Superuser {
		businessID := r.Scope.BusinessID
		filter.BusinessID = &businessID
	}

	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		if !domain.IsValidStatus(status) {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// CalendarRequest asks for the calendar-formatted listing
type CalendarRequest struct {
	Scope      Scope
	EmployeeID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// AppointmentResponse is one appointment in the management API
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	ClientID   int64  `json:"clientId"`
	ServiceID  int64  `json:"serviceId"`
	EmployeeID int64  `json:"employeeId"`
	Date       string `json:"date"`      // "2026-03-15"
	StartTime  string `json:"startTime"` // "10:00"
	EndTime    string `json:"endTime"`   // "10:30"
	Status     string `json:"status"`

	ServiceName            string  `json:"serviceName"`
	ServicePrice           float64 `json:"servicePrice"`
	ServiceDurationMinutes int     `json:"serviceDurationMinutes"`
	ClientName             string  `json:"clientName"`
	ClientEmail            string  `json:"clientEmail"`
	ClientPhone            *string `json:"clientPhone,omitempty"`
	EmployeeName           string  `json:"employeeName"`
	Notes                  *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse is the management listing envelope
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// CalendarEvent is one appointment shaped for the agenda widget
type CalendarEvent struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Start        string `json:"start"` // "2026-03-15T10:00"
	End          string `json:"end"`   // "2026-03-15T10:30"
	Color        string `json:"color"`
	Status       string `json:"status"`
	EmployeeName string `json:"employeeName"`
}

// CalendarResponse is the calendar view envelope
type CalendarResponse struct {
	Events []CalendarEvent `json:"events"`
}

// statusColors are the hex colors the agenda widget paints each status with
var statusColors = map[domain.AppointmentStatus]string{
	domain.StatusPending:   "#f59e0b",
	domain.StatusConfirmed: "#10b981",
	domain.StatusCompleted: "#6b7280",
	domain.StatusCancelled: "#ef4444",
}

// FromDomainAppointment converts a domain appointment to the API shape
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         a.ID,
		BusinessID: a.BusinessID,
		ClientID:   a.ClientID,
		ServiceID:  a.ServiceID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format(domain.DateFormat),
		StartTime:  a.StartTime.String(),
		EndTime:    a.EndTime.String(),
		Status:     string(a.Status),

		ServiceName:            a.ServiceName,
		ServicePrice:           a.ServicePrice,
		ServiceDurationMinutes: a.ServiceDurationMinutes,
		ClientName:             a.ClientName,
		ClientEmail:            a.ClientEmail,
		ClientPhone:            a.ClientPhone,
		EmployeeName:           a.EmployeeName,
		Notes:                  a.Notes,

		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromDomainAppointmentList converts a listing
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: out, Total: len(out)}
}

// ToCalendarEvent converts an appointment to an agenda widget event
func ToCalendarEvent(a *domain.Appointment) CalendarEvent {
	date := a.Date.Format(domain.DateFormat)
	return CalendarEvent{
		ID:           a.ID,
		Title:        a.ClientName + " - " + a.ServiceName,
		Start:        date + "T" + a.StartTime.String(),
		End:          date + "T" + a.EndTime.String(),
		Color:        statusColors[a.Status],
		Status:       string(a.Status),
		EmployeeName: a.EmployeeName,
	}
}

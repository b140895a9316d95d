package create_appointment

import (
	"time"

	"github.com/devsign-cl/appointment-service/pkg/types"
)

// Request carries the data needed to book an appointment
type Request struct {
	BusinessID int64            // Owning business
	ClientID   int64            // Booking client
	ServiceID  int64            // Booked service
	EmployeeID int64            // Assigned employee
	Date       time.Time        // Appointment date (time part ignored)
	StartTime  types.TimeString // Slot start, e.g. "10:00"
	Status     string           // Optional initial status, defaults to pending
	Notes      *string          // Optional free-form notes
}

// Response is the created appointment
type Response struct {
	ID         int64            `json:"id"`
	BusinessID int64            `json:"business_id"`
	ClientID   int64            `json:"client_id"`
	ServiceID  int64            `json:"service_id"`
	EmployeeID int64            `json:"employee_id"`
	Date       time.Time        `json:"date"`
	StartTime  types.TimeString `json:"start_time"`
	EndTime    types.TimeString `json:"end_time"`
	Status     string           `json:"status"`

	ServiceName            string  `json:"service_name"`
	ServicePrice           float64 `json:"service_price"`
	ServiceDurationMinutes int     `json:"service_duration_minutes"`
	ClientName             string  `json:"client_name"`
	EmployeeName           string  `json:"employee_name"`
	Notes                  *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

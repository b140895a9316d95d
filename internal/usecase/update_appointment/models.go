package update_appointment

import (
	"time"

	"github.com/devsign-cl/appointment-service/pkg/types"
)

// Request carries a partial update: nil fields are left untouched
type Request struct {
	AppointmentID int64
	BusinessID    int64 // Caller scope, 0 for superuser

	ServiceID  *int64
	EmployeeID *int64
	Date       *time.Time
	StartTime  *types.TimeString
	EndTime    *types.TimeString
	Status     *string
	Notes      *string
}

// Response is the updated appointment
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

	UpdatedAt time.Time `json:"updated_at"`
}

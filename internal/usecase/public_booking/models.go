package public_booking

import (
	"time"

	"github.com/devsign-cl/appointment-service/pkg/types"
)

// Request carries a booking made from the public site
type Request struct {
	BusinessSlug string           // Business identified by its public slug
	ClientName   string           // Free-form full name, split on first space
	ClientEmail  string           // Client lookup key within the business
	ClientPhone  *string          // Optional contact phone
	ServiceID    int64            // Booked service
	EmployeeID   int64            // Chosen employee
	Date         time.Time        // Appointment date
	StartTime    types.TimeString // Slot start, e.g. "10:00"
	Notes        *string          // Optional free-form notes
}

// Response is the created appointment as shown to the public client
type Response struct {
	ID           int64            `json:"id"`
	BusinessID   int64            `json:"business_id"`
	ClientID     int64            `json:"client_id"`
	Date         time.Time        `json:"date"`
	StartTime    types.TimeString `json:"start_time"`
	EndTime      types.TimeString `json:"end_time"`
	Status       string           `json:"status"`
	ServiceName  string           `json:"service_name"`
	ServicePrice float64          `json:"service_price"`
	EmployeeName string           `json:"employee_name"`
	CreatedAt    time.Time        `json:"created_at"`
}

package employee_availability

import (
	"time"

	"github.com/devsign-cl/appointment-service/pkg/types"
)

// Request asks which employees are free for a service at a given start
type Request struct {
	BusinessID int64
	ServiceID  int64
	Date       time.Time
	StartTime  types.TimeString
}

// AvailableEmployee is one free employee
type AvailableEmployee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Response lists the employees free for the whole window
type Response struct {
	Date      string              `json:"date"`
	StartTime types.TimeString    `json:"start_time"`
	EndTime   types.TimeString    `json:"end_time"`
	Employees []AvailableEmployee `json:"employees"`
}

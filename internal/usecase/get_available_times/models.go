package get_available_times

import "time"

// Request asks for the free slot starts on one date
type Request struct {
	BusinessID int64
	Date       time.Time
	EmployeeID *int64 // Optional: restrict to one employee's agenda
}

// Response lists the free slot starts in ascending order
type Response struct {
	Date           string   `json:"date"`
	AvailableTimes []string `json:"available_times"`
}

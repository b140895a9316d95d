package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default booking window: every business runs on a single fixed schedule
// in one timezone; overrides come from configuration, not storage
const (
	DefaultOpenTime           = "09:00"
	DefaultCloseTime          = "18:00"
	DefaultGranularityMinutes = 30
	DefaultTimezone           = "America/Santiago"
)

// Validation constants
const (
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 480 // 8 hours
	MaxNotesLength        = 500
)

// ConflictStatuses are the statuses that occupy a time slot.
// Cancelled and completed appointments never block a booking.
var ConflictStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

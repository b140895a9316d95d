package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrDuplicateSlot is returned when the insert hits the
	// (employee_id, date, start_time) uniqueness backstop. Callers report
	// it as a booking conflict, not as an internal failure.
	ErrDuplicateSlot = errors.New("appointment.repository: employee already booked at this start time")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

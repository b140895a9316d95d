package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrAccessDenied is returned when the caller's business scope does not
	// cover the appointment
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrCannotCancel is returned when the appointment is already in a
	// state that cannot be cancelled
	ErrCannotCancel = errors.New("appointments: appointment cannot be cancelled")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("appointments: internal error")
)

package public_booking

import "errors"

var (
	// ErrBusinessNotFound is returned when the slug matches no business
	ErrBusinessNotFound = errors.New("public_booking: business not found")

	// ErrServiceNotFound is returned when the service does not exist or is inactive
	ErrServiceNotFound = errors.New("public_booking: service not found")

	// ErrEmployeeNotFound is returned when the employee does not exist or is inactive
	ErrEmployeeNotFound = errors.New("public_booking: employee not found")

	// ErrSlotConflict is returned when the requested window overlaps an active appointment
	ErrSlotConflict = errors.New("public_booking: time slot is already taken")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("public_booking: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("public_booking: internal error")
)

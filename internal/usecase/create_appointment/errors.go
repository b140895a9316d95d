package create_appointment

import "errors"

var (
	// ErrServiceNotFound is returned when the service does not exist or is inactive
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrEmployeeNotFound is returned when the employee does not exist or is inactive
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")

	// ErrClientNotFound is returned when the client does not exist
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrWrongBusiness is returned when the service or employee belongs to another business
	ErrWrongBusiness = errors.New("create_appointment: resource belongs to another business")

	// ErrSlotConflict is returned when the requested window overlaps an active appointment
	ErrSlotConflict = errors.New("create_appointment: time slot is already taken")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("create_appointment: internal error")
)

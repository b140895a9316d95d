package employee_availability

import "errors"

var (
	// ErrServiceNotFound is returned when the service does not exist or is inactive
	ErrServiceNotFound = errors.New("employee_availability: service not found")

	// ErrWrongBusiness is returned when the service belongs to another business
	ErrWrongBusiness = errors.New("employee_availability: service belongs to another business")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("employee_availability: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("employee_availability: internal error")
)

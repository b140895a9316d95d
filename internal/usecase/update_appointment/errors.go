package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrServiceNotFound is returned when the replacement service does not exist
	ErrServiceNotFound = errors.New("update_appointment: service not found")

	// ErrEmployeeNotFound is returned when the replacement employee does not exist
	ErrEmployeeNotFound = errors.New("update_appointment: employee not found")

	// ErrWrongBusiness is returned when the appointment or a replacement
	// resource belongs to another business
	ErrWrongBusiness = errors.New("update_appointment: resource belongs to another business")

	// ErrAppointmentCompleted is returned when any field of a completed
	// appointment is edited
	ErrAppointmentCompleted = errors.New("update_appointment: completed appointments cannot be modified")

	// ErrTerminalStatus is returned on an attempt to move a completed
	// appointment to another status
	ErrTerminalStatus = errors.New("update_appointment: completed is a terminal status")

	// ErrInvalidTransition is returned when the requested status change is
	// not allowed by the status machine
	ErrInvalidTransition = errors.New("update_appointment: invalid status transition")

	// ErrSlotConflict is returned when the new window overlaps an active appointment
	ErrSlotConflict = errors.New("update_appointment: time slot is already taken")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("update_appointment: internal error")
)

package get_available_times

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("get_available_times: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("get_available_times: internal error")
)

package googlecalendar

import "errors"

var (
	// ErrEventNotFound is returned when the event was removed on the Google side
	ErrEventNotFound = errors.New("googlecalendar client: event not found")

	// ErrCalendarNotFound is returned when the calendar handle is stale
	ErrCalendarNotFound = errors.New("googlecalendar client: calendar not found")

	// ErrUnauthorized is returned on an expired or revoked access token
	ErrUnauthorized = errors.New("googlecalendar client: unauthorized")

	// ErrInternal is returned on unexpected client failures
	ErrInternal = errors.New("googlecalendar client: internal error")

	// ErrInvalidResponse is returned on a malformed API response
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")
)

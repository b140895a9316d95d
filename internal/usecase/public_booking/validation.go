package public_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BusinessSlug) == "" {
		return fmt.Errorf("%w: business slug is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if !strings.Contains(req.ClientEmail, "@") {
		return fmt.Errorf("%w: a valid client email is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// splitName splits a free-form full name into first and last name.
// Everything after the first space becomes the last name.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	first, last, found := strings.Cut(full, " ")
	if !found {
		return full, ""
	}
	return first, strings.TrimSpace(last)
}

// isDateInPast compares calendar days, ignoring the time of day
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

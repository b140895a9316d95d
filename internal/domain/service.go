package domain

import "time"

// Service represents a bookable service offered by a business
type Service struct {
	ID              int64
	BusinessID      int64
	CategoryID      int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

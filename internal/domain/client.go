package domain

import "time"

// Client represents a person booking services with a business.
// Email is unique within a business: the public booking flow looks clients
// up (or creates them) by the (email, business) pair.
type Client struct {
	ID         int64
	BusinessID int64
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

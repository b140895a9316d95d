package domain

import (
	"strings"
	"time"
	"unicode"
)

// Business represents a tenant. All clients, services, employees and
// appointments are scoped to exactly one business.
type Business struct {
	ID   int64
	Name string
	// Slug is derived from the name at creation and never changes afterwards
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slugify derives a url-safe slug from a business name: lowercase,
// non-alphanumeric runs collapsed to single hyphens
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

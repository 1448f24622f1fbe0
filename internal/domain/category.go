package domain

import "time"

// Category groups blog posts under a URL-addressable name.
type Category struct {
	ID        string
	Name      string
	URLHandle string
	CreatedAt time.Time
	UpdatedAt time.Time
}

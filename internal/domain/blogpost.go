package domain

import "time"

// BlogPost is the aggregate for published articles. Categories are loaded
// alongside the post; IsVisible gates the public reading view.
type BlogPost struct {
	ID               string
	Title            string
	ShortDescription string
	Content          string
	FeaturedImageURL string
	URLHandle        string
	Author           string
	IsVisible        bool
	PublishedAt      time.Time
	Categories       []Category
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

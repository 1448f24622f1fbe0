package domain

import "time"

// Image records metadata for an uploaded blog image; the blob itself lives
// in object storage under StorageKey.
type Image struct {
	ID            string
	FileName      string
	FileExtension string
	Title         string
	URL           string
	StorageKey    string
	CreatedAt     time.Time
}

package domain

import "time"

// User is the identity record for a registered account. Email is stored
// normalized (trimmed, lowercased) and doubles as the username.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

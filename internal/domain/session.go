package domain

import "time"

// Session is the credential handed to a client after a successful login:
// the signed token plus the identity and role claims decoded from it.
type Session struct {
	Email     string
	Roles     []Role
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session's credential has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

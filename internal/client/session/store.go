package session

import (
	"sync"

	"github.com/spec-kit/codepulse/internal/domain"
)

// Store holds the client's local copy of the credential and its decoded
// claims. Clearing and reading are serialized so logout never races a
// navigation check.
type Store struct {
	mu      sync.Mutex
	session *domain.Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the stored session after a successful login.
func (s *Store) Set(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// Clear destroys the stored session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// Token returns the stored credential string, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// Session returns the stored session, nil when logged out.
func (s *Store) Session() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

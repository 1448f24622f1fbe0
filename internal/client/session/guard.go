package session

import (
	"time"

	"github.com/spec-kit/codepulse/internal/auth"
	"github.com/spec-kit/codepulse/internal/domain"
)

// Action is the outcome of a guard evaluation.
type Action int

const (
	// ActionAllow lets the navigation proceed.
	ActionAllow Action = iota
	// ActionRedirectToLogin forces re-authentication, preserving the
	// originally requested destination.
	ActionRedirectToLogin
	// ActionDeny blocks the navigation but keeps the session.
	ActionDeny
)

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Action    Action
	ReturnURL string
}

// Evaluate is the pure pre-navigation decision. Branches, in order, each
// terminal:
//  1. no credential or no cached session: redirect to login
//  2. undecodable credential: redirect to login
//  3. expired credential: redirect to login
//  4. required role present: allow
//  5. otherwise: deny, session stays
//
// The decode is unverified and advisory; the server re-verifies every call.
func Evaluate(token string, sess *domain.Session, required domain.Role, target string, now time.Time) Decision {
	if token == "" || sess == nil {
		return Decision{Action: ActionRedirectToLogin, ReturnURL: target}
	}

	claims, err := auth.DecodeClaims(token)
	if err != nil {
		return Decision{Action: ActionRedirectToLogin, ReturnURL: target}
	}

	if !now.Before(claims.ExpiresAtTime()) {
		return Decision{Action: ActionRedirectToLogin, ReturnURL: target}
	}

	if domain.HasRole(sess.Roles, required) {
		return Decision{Action: ActionAllow}
	}
	return Decision{Action: ActionDeny}
}

// Navigator applies the guard's effects in the host UI.
type Navigator interface {
	RedirectToLogin(returnURL string)
	Unauthorized(target string)
}

// Guard is the effect-applying shell around Evaluate.
type Guard struct {
	store *Store
	nav   Navigator
	now   func() time.Time
}

// NewGuard builds a guard over the store and navigator.
func NewGuard(store *Store, nav Navigator) *Guard {
	return &Guard{store: store, nav: nav, now: time.Now}
}

// WithClock overrides the time source. Used by tests.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Check runs the guard for a protected navigation and applies its effects.
// It returns true only when the navigation may proceed.
func (g *Guard) Check(target string, required domain.Role) bool {
	decision := Evaluate(g.store.Token(), g.store.Session(), required, target, g.now())

	switch decision.Action {
	case ActionAllow:
		return true
	case ActionRedirectToLogin:
		g.store.Clear()
		g.nav.RedirectToLogin(decision.ReturnURL)
		return false
	default:
		g.nav.Unauthorized(target)
		return false
	}
}

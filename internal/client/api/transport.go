package api

import (
	"net/http"

	"github.com/spec-kit/codepulse/internal/client/session"
)

// bearerTransport attaches the stored credential to every outbound request.
// It never checks expiry; the server is the authority for API calls.
type bearerTransport struct {
	store *session.Store
	next  http.RoundTripper
}

func newBearerTransport(store *session.Store, next http.RoundTripper) *bearerTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &bearerTransport{store: store, next: next}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.store.Token()
	if token == "" {
		return t.next.RoundTrip(req)
	}

	// Per RoundTripper contract the request is not mutated in place.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(cloned)
}

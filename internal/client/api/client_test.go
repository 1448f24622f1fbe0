package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/codepulse/internal/api/dto"
	"github.com/spec-kit/codepulse/internal/auth"
	"github.com/spec-kit/codepulse/internal/client/session"
	"github.com/spec-kit/codepulse/internal/domain"
)

func issueToken(t *testing.T) string {
	t.Helper()
	tm := auth.NewTokenManager("client-test-secret", 60)
	token, _, err := tm.Issue("writer@example.com", []domain.Role{domain.RoleWriter})
	require.NoError(t, err)
	return token
}

func TestBearerTransportAttachesStoredCredential(t *testing.T) {
	token := issueToken(t)

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	store := session.NewStore()
	client := NewClient(server.URL, store)

	_, err := client.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "logged-out requests carry no credential")

	store.Set(&domain.Session{Token: token})
	_, err = client.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+token, gotAuth)
}

func TestBearerTransportDoesNotMutateOriginalRequest(t *testing.T) {
	store := session.NewStore()
	store.Set(&domain.Session{Token: "abc"})

	var sawHeader string
	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		sawHeader = r.Header.Get("Authorization")
		return &http.Response{StatusCode: 200, Body: http.NoBody}, nil
	})

	transport := newBearerTransport(store, next)
	req, err := http.NewRequest(http.MethodGet, "http://example.com/api/blogposts", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer abc", sawHeader)
	assert.Empty(t, req.Header.Get("Authorization"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestLoginStoresDecodedSession(t *testing.T) {
	tm := auth.NewTokenManager("client-test-secret", 60)
	token, claims, err := tm.Issue("writer@example.com", []domain.Role{domain.RoleReader, domain.RoleWriter})
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(dto.LoginResponse{
			Email: "writer@example.com",
			Roles: []string{"Reader", "Writer"},
			Token: token,
		})
	}))
	defer server.Close()

	store := session.NewStore()
	client := NewClient(server.URL, store)

	sess, err := client.Login(context.Background(), "writer@example.com", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "writer@example.com", sess.Email)
	assert.Equal(t, []domain.Role{domain.RoleReader, domain.RoleWriter}, sess.Roles)
	assert.True(t, sess.ExpiresAt.Equal(claims.ExpiresAtTime()))

	stored := store.Session()
	require.NotNil(t, stored)
	assert.Equal(t, token, stored.Token)
}

func TestLoginSurfacesValidationPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(dto.ValidationErrorResponse{
			Errors: map[string][]string{"": {"Email or password incorrect"}},
		})
	}))
	defer server.Close()

	store := session.NewStore()
	client := NewClient(server.URL, store)

	_, err := client.Login(context.Background(), "writer@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Email or password incorrect", apiErr.Error())
	assert.Nil(t, store.Session())
}

func TestLogoutClearsLocalSession(t *testing.T) {
	store := session.NewStore()
	store.Set(&domain.Session{Token: "abc", ExpiresAt: time.Now().Add(time.Hour)})

	client := NewClient("http://localhost:0", store)
	client.Logout()

	assert.Nil(t, store.Session())
	assert.Empty(t, store.Token())
}

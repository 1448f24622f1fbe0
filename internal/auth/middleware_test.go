package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/spec-kit/codepulse/internal/api/http"
	"github.com/spec-kit/codepulse/internal/auth"
	"github.com/spec-kit/codepulse/internal/domain"
	"github.com/spec-kit/codepulse/internal/observability"
)

func newProtectedApp(t *testing.T, tokens *auth.TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)

	middleware := auth.NewMiddleware(tokens)
	app.Get("/protected", middleware.Handle, auth.RequireRole(domain.RoleWriter), func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		require.True(t, ok)
		return c.SendString(principal.Email)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	app := newProtectedApp(t, auth.NewTokenManager("middleware-secret", 60))
	resp := doGet(t, app, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	app := newProtectedApp(t, auth.NewTokenManager("middleware-secret", 60))
	for _, header := range []string{"Token abc", "Bearerabc", "abc"} {
		resp := doGet(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		resp.Body.Close()
	}
}

func TestMiddlewareRejectsForgedToken(t *testing.T) {
	app := newProtectedApp(t, auth.NewTokenManager("middleware-secret", 60))

	forged := auth.NewTokenManager("other-secret", 60)
	token, _, err := forged.Issue("writer@example.com", []domain.Role{domain.RoleWriter})
	require.NoError(t, err)

	resp := doGet(t, app, "Bearer "+token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleForbidsReaderOnWriterRoute(t *testing.T) {
	tokens := auth.NewTokenManager("middleware-secret", 60)
	app := newProtectedApp(t, tokens)

	token, _, err := tokens.Issue("reader@example.com", []domain.Role{domain.RoleReader})
	require.NoError(t, err)

	resp := doGet(t, app, "Bearer "+token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMiddlewareAdmitsWriter(t *testing.T) {
	tokens := auth.NewTokenManager("middleware-secret", 60)
	app := newProtectedApp(t, tokens)

	token, _, err := tokens.Issue("writer@example.com", []domain.Role{domain.RoleReader, domain.RoleWriter})
	require.NoError(t, err)

	resp := doGet(t, app, "Bearer "+token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

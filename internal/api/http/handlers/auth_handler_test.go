package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/codepulse/internal/api/dto"
	apihttp "github.com/spec-kit/codepulse/internal/api/http"
	"github.com/spec-kit/codepulse/internal/api/http/handlers"
	"github.com/spec-kit/codepulse/internal/domain"
	"github.com/spec-kit/codepulse/internal/observability"
	apperrors "github.com/spec-kit/codepulse/pkg/util"
)

type stubAuthService struct {
	registerErr error
	session     *domain.Session
	loginErr    error
	gotEmail    string
}

func (s *stubAuthService) Register(_ context.Context, email, _ string) error {
	s.gotEmail = email
	return s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*domain.Session, error) {
	s.gotEmail = email
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.session, nil
}

func newAuthApp(svc handlers.AuthService) *fiber.App {
	app := fiber.New()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	handler := handlers.NewAuthHandler(svc)
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeErrors(t *testing.T, resp *http.Response) map[string][]string {
	t.Helper()
	var payload dto.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Errors
}

func TestRegisterSuccessHasEmptyBody(t *testing.T) {
	svc := &stubAuthService{}
	app := newAuthApp(svc)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Secret123!",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", svc.gotEmail)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

func TestRegisterValidationFailureReturns400(t *testing.T) {
	verrs := apperrors.NewValidationErrors()
	verrs.AddGlobal("Email 'alice@example.com' is already taken.")
	svc := &stubAuthService{registerErr: verrs}
	app := newAuthApp(svc)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Secret123!",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := decodeErrors(t, resp)
	assert.Equal(t, []string{"Email 'alice@example.com' is already taken."}, errs[apperrors.GlobalField])
}

func TestLoginFailureReturnsGenericMessage(t *testing.T) {
	svc := &stubAuthService{loginErr: apperrors.ErrInvalidCredentials}
	app := newAuthApp(svc)

	resp := postJSON(t, app, "/api/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "WrongPass1",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := decodeErrors(t, resp)
	assert.Equal(t, []string{handlers.LoginFailedMessage}, errs[apperrors.GlobalField])
}

func TestLoginSuccessReturnsCredential(t *testing.T) {
	svc := &stubAuthService{session: &domain.Session{
		Email: "alice@example.com",
		Roles: []domain.Role{domain.RoleReader},
		Token: "token-value",
	}}
	app := newAuthApp(svc)

	resp := postJSON(t, app, "/api/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Secret123!",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var payload dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "alice@example.com", payload.Email)
	assert.Equal(t, []string{"Reader"}, payload.Roles)
	assert.Equal(t, "token-value", payload.Token)
}

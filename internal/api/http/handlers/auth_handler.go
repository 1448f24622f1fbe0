package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/codepulse/internal/api/dto"
	"github.com/spec-kit/codepulse/internal/domain"
	apperrors "github.com/spec-kit/codepulse/pkg/util"
)

// LoginFailedMessage is the single message returned for any login failure.
const LoginFailedMessage = "Email or password incorrect"

// AuthService narrows the auth service surface used over HTTP.
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*domain.Session, error)
}

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register. Success has no body.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.auth.Register(c.UserContext(), req.Email, req.Password); err != nil {
		return err
	}
	return c.SendStatus(http.StatusOK)
}

// Login handles POST /api/auth/login. Any failure yields the same generic
// validation payload.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			verrs := apperrors.NewValidationErrors()
			verrs.AddGlobal(LoginFailedMessage)
			return verrs
		}
		return err
	}

	return c.JSON(dto.LoginResponse{
		Email: session.Email,
		Roles: domain.RoleNames(session.Roles),
		Token: session.Token,
	})
}

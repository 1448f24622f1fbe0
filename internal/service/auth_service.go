package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/codepulse/internal/auth"
	"github.com/spec-kit/codepulse/internal/config"
	"github.com/spec-kit/codepulse/internal/domain"
	"github.com/spec-kit/codepulse/internal/repository"
	apperrors "github.com/spec-kit/codepulse/pkg/util"
)

const minPasswordLength = 8

// AuthService coordinates registration and login against the credential
// store and the token issuer.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// NormalizeEmail trims and lowercases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with zero roles and then assigns Reader. A failed
// role assignment is surfaced as validation errors; the user row is kept
// (no compensation) and logged for operator reconciliation.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)

	verrs := apperrors.NewValidationErrors()
	if email == "" || !strings.Contains(email, "@") {
		verrs.AddGlobal(fmt.Sprintf("Email '%s' is invalid.", email))
	}
	validatePassword(password, verrs)
	if !verrs.Empty() {
		return verrs
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			verrs.AddGlobal(fmt.Sprintf("Email '%s' is already taken.", email))
			return verrs
		}
		return err
	}

	if err := s.users.AssignRole(ctx, user.ID, domain.RoleReader); err != nil {
		s.logger.Warn("user created without default role",
			zap.String("user_id", user.ID),
			zap.Error(err))
		verrs.AddGlobal("Could not assign default role.")
		return verrs
	}

	return nil
}

// Login authenticates a user and mints a credential. Unknown email and
// wrong password return the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	roles, err := s.users.ListRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, claims, err := s.tokenMgr.Issue(user.Email, roles)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Email:     user.Email,
		Roles:     roles,
		Token:     token,
		IssuedAt:  claims.IssuedAtTime(),
		ExpiresAt: claims.ExpiresAtTime(),
	}, nil
}

// EnsureAdmin seeds the bootstrap admin account holding both roles. It is
// a no-op when the account already exists or no password is configured.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	email = NormalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	for _, role := range []domain.Role{domain.RoleReader, domain.RoleWriter} {
		if err := s.users.AssignRole(ctx, user.ID, role); err != nil {
			return err
		}
	}

	s.logger.Info("seeded admin account", zap.String("email", email))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func validatePassword(password string, verrs *apperrors.ValidationErrors) {
	if len(password) < minPasswordLength {
		verrs.AddGlobal(fmt.Sprintf("Passwords must be at least %d characters.", minPasswordLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		verrs.AddGlobal("Passwords must have at least one uppercase letter.")
	}
	if !hasLower {
		verrs.AddGlobal("Passwords must have at least one lowercase letter.")
	}
	if !hasDigit {
		verrs.AddGlobal("Passwords must have at least one digit.")
	}
}

package service_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authpkg "github.com/spec-kit/codepulse/internal/auth"
	"github.com/spec-kit/codepulse/internal/config"
	"github.com/spec-kit/codepulse/internal/domain"
	"github.com/spec-kit/codepulse/internal/repository"
	"github.com/spec-kit/codepulse/internal/service"
	apperrors "github.com/spec-kit/codepulse/pkg/util"
)

// fakeUserRepo is an in-memory credential store with injectable failures.
type fakeUserRepo struct {
	users         map[string]*domain.User
	roles         map[string][]domain.Role
	assignRoleErr error
	nextID        int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: map[string]*domain.User{},
		roles: map[string][]domain.Role{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.users[user.Email]; exists {
		return repository.ErrEmailTaken
	}
	f.nextID++
	user.ID = strconv.Itoa(f.nextID)
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) AssignRole(_ context.Context, userID string, role domain.Role) error {
	if f.assignRoleErr != nil {
		return f.assignRoleErr
	}
	f.roles[userID] = append(f.roles[userID], role)
	return nil
}

func (f *fakeUserRepo) ListRoles(_ context.Context, userID string) ([]domain.Role, error) {
	return f.roles[userID], nil
}

func newAuthService(repo repository.UserRepository) *service.AuthService {
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}
	return service.NewAuthService(cfg, repo, zap.NewNop())
}

func TestRegisterAssignsReaderRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	err := svc.Register(context.Background(), " Alice@Example.com ", "Secret123!")
	require.NoError(t, err)

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleReader}, repo.roles[user.ID])
	assert.NotEqual(t, "Secret123!", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	require.NoError(t, svc.Register(context.Background(), "alice@example.com", "Secret123!"))

	err := svc.Register(context.Background(), "alice@example.com", "Secret123!")
	var verrs *apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields[apperrors.GlobalField][0], "already taken")
}

func TestRegisterWeakPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	err := svc.Register(context.Background(), "alice@example.com", "short")
	var verrs *apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	// Too short, no uppercase, no digit: one message per violated constraint.
	assert.Len(t, verrs.Fields[apperrors.GlobalField], 3)

	_, getErr := repo.GetByEmail(context.Background(), "alice@example.com")
	assert.ErrorIs(t, getErr, pgx.ErrNoRows)
}

func TestRegisterRoleAssignmentFailureKeepsUser(t *testing.T) {
	repo := newFakeUserRepo()
	repo.assignRoleErr = errors.New("role store unavailable")
	svc := newAuthService(repo)

	err := svc.Register(context.Background(), "alice@example.com", "Secret123!")
	var verrs *apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs.Fields[apperrors.GlobalField])

	// The user row survives without the intended role; no compensation.
	user, getErr := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, getErr)
	assert.Empty(t, repo.roles[user.ID])
}

func TestLoginUnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	require.NoError(t, svc.Register(context.Background(), "alice@example.com", "Secret123!"))

	_, unknownErr := svc.Login(context.Background(), "bob@example.com", "Secret123!")
	_, wrongErr := svc.Login(context.Background(), "alice@example.com", "WrongPass1")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginReturnsSessionWithStoredRoles(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	require.NoError(t, svc.Register(context.Background(), "alice@example.com", "Secret123!"))

	sess, err := svc.Login(context.Background(), "Alice@Example.com", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", sess.Email)
	assert.Equal(t, []domain.Role{domain.RoleReader}, sess.Roles)
	require.NotEmpty(t, sess.Token)

	claims, err := authpkg.DecodeClaims(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, []string{"Reader"}, claims.Roles)
	assert.True(t, sess.ExpiresAt.Equal(claims.ExpiresAtTime()))
}

func TestEnsureAdminSeedsBothRoles(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@codepulse.com", "Admin@123"))

	user, err := repo.GetByEmail(context.Background(), "admin@codepulse.com")
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Role{domain.RoleReader, domain.RoleWriter}, repo.roles[user.ID])

	// Idempotent on re-run.
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@codepulse.com", "Admin@123"))
}

func TestEnsureAdminSkippedWithoutPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@codepulse.com", ""))
	assert.Empty(t, repo.users)
}

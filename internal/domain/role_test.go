package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/codepulse/internal/domain"
)

func TestParseRole(t *testing.T) {
	role, err := domain.ParseRole("Reader")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleReader, role)

	role, err = domain.ParseRole("Writer")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleWriter, role)
}

func TestParseRoleRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "reader", "Admin", "WRITER"} {
		_, err := domain.ParseRole(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestParseRolesRejectsAnyUnknown(t *testing.T) {
	roles, err := domain.ParseRoles([]string{"Reader", "Writer"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleReader, domain.RoleWriter}, roles)

	_, err = domain.ParseRoles([]string{"Reader", "Moderator"})
	assert.Error(t, err)
}

func TestRoleNamesRoundTrip(t *testing.T) {
	names := domain.RoleNames([]domain.Role{domain.RoleReader, domain.RoleWriter})
	assert.Equal(t, []string{"Reader", "Writer"}, names)
	assert.Empty(t, domain.RoleNames(nil))
}

func TestHasRole(t *testing.T) {
	roles := []domain.Role{domain.RoleReader}
	assert.True(t, domain.HasRole(roles, domain.RoleReader))
	assert.False(t, domain.HasRole(roles, domain.RoleWriter))
	assert.False(t, domain.HasRole(nil, domain.RoleReader))
}

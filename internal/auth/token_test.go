package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/codepulse/internal/auth"
	"github.com/spec-kit/codepulse/internal/domain"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := auth.NewTokenManager("test-secret", 60).WithClock(func() time.Time { return issued })

	token, claims, err := tm.Issue("alice@example.com", []domain.Role{domain.RoleReader, domain.RoleWriter})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, []string{"Reader", "Writer"}, claims.Roles)
	assert.Equal(t, issued, claims.IssuedAtTime())
	assert.Equal(t, issued.Add(60*time.Minute), claims.ExpiresAtTime())

	parsed, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, claims.Subject, parsed.Subject)
	assert.Equal(t, claims.Roles, parsed.Roles)
	assert.True(t, claims.IssuedAtTime().Equal(parsed.IssuedAtTime()))
	assert.True(t, claims.ExpiresAtTime().Equal(parsed.ExpiresAtTime()))
}

func TestParseRejectsWrongKey(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	other := auth.NewTokenManager("other-secret", 60)

	token, _, err := tm.Issue("alice@example.com", []domain.Role{domain.RoleReader})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)

	token, _, err := tm.Issue("alice@example.com", []domain.Role{domain.RoleReader})
	require.NoError(t, err)

	// Flip a character inside the payload segment.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = tm.Parse(string(tampered))
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	tm := auth.NewTokenManager("test-secret", 60).WithClock(func() time.Time { return issued })

	token, _, err := tm.Issue("alice@example.com", []domain.Role{domain.RoleReader})
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}

func TestDecodeClaimsWithoutVerification(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := auth.NewTokenManager("test-secret", 60).WithClock(func() time.Time { return issued })

	token, claims, err := tm.Issue("alice@example.com", []domain.Role{domain.RoleReader})
	require.NoError(t, err)

	decoded, err := auth.DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, claims.Subject, decoded.Subject)
	assert.Equal(t, claims.Roles, decoded.Roles)
	assert.True(t, claims.IssuedAtTime().Equal(decoded.IssuedAtTime()))
	assert.True(t, claims.ExpiresAtTime().Equal(decoded.ExpiresAtTime()))
}

func TestDecodeClaimsExpiredTokenStillDecodes(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	tm := auth.NewTokenManager("test-secret", 60).WithClock(func() time.Time { return issued })

	token, _, err := tm.Issue("alice@example.com", []domain.Role{domain.RoleReader})
	require.NoError(t, err)

	decoded, err := auth.DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", decoded.Subject)
}

func TestDecodeClaimsMalformed(t *testing.T) {
	_, err := auth.DecodeClaims("not-a-token")
	assert.ErrorIs(t, err, auth.ErrMalformedToken)
}

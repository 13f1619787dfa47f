package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormkid2009/restooo/internal/domain"
)

const testSecret = "test-signing-secret"

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	token, expiresAt, err := tm.Issue("user-1", "chef@restooo.dev", domain.RoleChef)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID())
	assert.Equal(t, "chef@restooo.dev", claims.Email)
	assert.Equal(t, domain.RoleChef, claims.Role)
}

func TestTokenExpiryBoundary(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	// pin the clock so the boundary is exact; expiry claims carry second
	// precision on the wire
	issuedAt := time.Now().Truncate(time.Second)
	tm.now = func() time.Time { return issuedAt }

	token, expiresAt, err := tm.Issue("user-1", "a@restooo.dev", domain.RoleStaff)
	require.NoError(t, err)
	require.True(t, expiresAt.Equal(issuedAt.Add(time.Hour)))

	tm.now = func() time.Time { return expiresAt.Add(-time.Second) }
	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID())

	// exactly at the expiry instant the token is already expired
	tm.now = func() time.Time { return expiresAt }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	tm.now = func() time.Time { return expiresAt.Add(time.Second) }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	claims := &Claims{
		Email: "staff@restooo.dev",
		Role:  domain.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-2",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	other := NewTokenManager("a-different-secret", time.Hour)

	token, _, err := tm.Issue("user-3", "a@restooo.dev", domain.RoleStaff)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenTampered(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	token, _, err := tm.Issue("user-4", "b@restooo.dev", domain.RoleStaff)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[1] = "eyJzdWIiOiJzb21lb25lLWVsc2UifQ"
	_, err = tm.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := tm.Verify(input)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", input)
	}
}

func TestTokenRejectsOtherSigningMethod(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-5",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

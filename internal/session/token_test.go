package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/assert"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired_JWTClaim(t *testing.T) {
	now := time.Now()

	expired := signedToken(t, now.Add(-time.Minute))
	valid := signedToken(t, now.Add(time.Hour))

	assert.True(t, tokenExpired(expired, time.Time{}, now))
	assert.False(t, tokenExpired(valid, time.Time{}, now))
}

func TestTokenExpired_ClaimWinsOverStoredExpiry(t *testing.T) {
	now := time.Now()

	// The claim says valid; an older stored timestamp does not override it.
	valid := signedToken(t, now.Add(time.Hour))
	assert.False(t, tokenExpired(valid, now.Add(-time.Hour), now))
}

func TestTokenExpired_OpaqueTokenUsesStoredExpiry(t *testing.T) {
	now := time.Now()

	assert.True(t, tokenExpired("opaque-token", now.Add(-time.Minute), now))
	assert.False(t, tokenExpired("opaque-token", now.Add(time.Minute), now))
}

func TestTokenExpired_NoExpiryInformation(t *testing.T) {
	// A token with no claim and no stored expiry is not determined expired.
	assert.False(t, tokenExpired("opaque-token", time.Time{}, time.Now()))
}

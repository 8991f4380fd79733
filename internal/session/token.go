package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired determines whether a persisted token is expired at the given
// instant.
//
// The token is decoded unverified purely to read its exp claim; signature
// validation is the server's job, the client only needs the expiry. When the
// token carries no readable exp claim the stored expiry timestamp is used
// instead. A token with neither is not determined expired.
func tokenExpired(token string, storedExpiry time.Time, now time.Time) bool {
	if claims := parseExpiry(token); claims != nil {
		return now.After(claims.Time)
	}
	if !storedExpiry.IsZero() {
		return now.After(storedExpiry)
	}
	return false
}

func parseExpiry(token string) *jwt.NumericDate {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwt.RegisteredClaims{})
	if err != nil {
		return nil
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ExpiresAt == nil {
		return nil
	}
	return claims.ExpiresAt
}

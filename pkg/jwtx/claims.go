package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session tokens. Blog
// sessions are longer-lived than typical API access tokens since the
// cookie is the only credential the browser holds.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the session-token claims. The subject is the user id; the
// username rides along so handlers can log who acted without a store
// round trip.
type Claims struct {
	jwt.RegisteredClaims

	Username string `json:"username,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a session token.
// Expiry is always set; tokens without an exp claim are rejected at
// verification time.
func NewSessionClaims(subject, username, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Username: username,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

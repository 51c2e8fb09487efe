package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo describes a stored token. Fields are zero when the token is opaque.
type TokenInfo struct {
	JWT       bool
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// InspectToken reads the claims of a JWT without verifying its signature. The
// backend owns verification; the CLI only uses the claims for display.
func InspectToken(token string) TokenInfo {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{JWT: true}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}

// TokenInfo inspects the stored token. ok is false when no token is stored.
func (s *Service) TokenInfo() (info TokenInfo, ok bool) {
	token, err := s.tokens.LoadToken()
	if err != nil || token == "" {
		return TokenInfo{}, false
	}
	return InspectToken(token), true
}

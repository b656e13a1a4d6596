package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a bearer token cannot be decoded.
// Treated as a login failure by callers, never a crash.
var ErrMalformedToken = errors.New("malformed token")

// Claims are the portal-specific claims embedded in the bearer token. The
// backend signs the token; the client only decodes it to learn who it is
// talking as, so no signature verification happens here.
type Claims struct {
	jwt.RegisteredClaims
	UserID  int64 `json:"userId"`
	IsAdmin bool  `json:"isAdmin"`
}

// ParseClaims decodes the claims from a raw three-part token without
// verifying the signature.
func ParseClaims(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrMalformedToken)
	}

	return claims, nil
}

package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Sub      string `json:"sub"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims reads the token payload without verifying the signature; the
// backend owns the signing key, the frontend only needs exp and subject.
func ParseClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	if claims.Sub == "" && claims.Subject != "" {
		claims.Sub = claims.Subject
	}
	return claims, nil
}

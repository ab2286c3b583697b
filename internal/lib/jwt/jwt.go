package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewToken signs an HS256 token with the claims the admin API checks.
// Production tokens come from the external auth provider; this is for local
// use and tests.
func NewToken(subject, role string, secret []byte, duration time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	})

	return token.SignedString(secret)
}

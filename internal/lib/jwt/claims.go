// Package jwt implements generation and parsing of the signed tokens that
// authenticate requests, with custom claim fields for username and role.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NikolaMax/ticketing-backend/internal/lib/device"
)

// CustomClaims carries the identity data embedded in every token.
type CustomClaims struct {
	Username             string `json:"username"`
	Role                 string `json:"role"`
	jwt.RegisteredClaims        // standard claims (ExpiresAt, IssuedAt, ...)
}

// GenerateToken creates a signed HS256 token for the given username and
// role. The lifetime depends on the device class of the caller.
func (j *MakerImpl) GenerateToken(username, role string, class device.Class) (string, error) {
	const op = "jwt.GenerateToken"
	now := time.Now()
	claims := CustomClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL(class))),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken verifies the signature and validity of a token and returns
// its claims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// CanRefresh reports whether a token may be exchanged for a fresh one:
// it must have been issued at or after the user's last password reset.
func CanRefresh(claims *CustomClaims, lastPasswordReset time.Time) bool {
	if claims.IssuedAt == nil {
		return false
	}
	return !claims.IssuedAt.Time.Before(lastPasswordReset)
}

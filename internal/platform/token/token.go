// Package token issues and verifies the signed credentials handed out on
// login. Tokens are HS256 JWTs carrying the user id and issue time.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification.
// Bad signature and expired are deliberately indistinguishable so callers
// cannot probe which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the verified payload of an issued credential.
type Claims struct {
	// UserID identifies the principal the token was issued to.
	UserID uint

	// IssuedAt is the issue timestamp, compared against the principal's
	// last password change to reject stale credentials.
	IssuedAt time.Time
}

// Service signs and verifies credentials with a shared HMAC secret.
type Service struct {
	secret     []byte
	expiration time.Duration
}

// NewService creates a token service with the given secret and token lifetime.
func NewService(secret string, expiration time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT with standard claims for the user.
func (s *Service) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"iat": now.Unix(),
		"exp": now.Add(s.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies signature and expiry and returns the embedded claims.
func (s *Service) ParseToken(raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is acceptable; anything else is a forgery attempt.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
	if !ok {
		return nil, ErrInvalidToken
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:   uint(sub),
		IssuedAt: time.Unix(int64(iat), 0),
	}, nil
}

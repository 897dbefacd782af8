package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", time.Hour)

	signed, err := svc.GenerateToken(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := svc.ParseToken(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if time.Since(claims.IssuedAt) > time.Minute {
		t.Errorf("issue time too far in the past: %v", claims.IssuedAt)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := NewService("secret-a", time.Hour).GenerateToken(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = NewService("secret-b", time.Hour).ParseToken(signed)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", -time.Minute)
	signed, err := svc.GenerateToken(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.ParseToken(signed)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ParseToken(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseToken(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

// Tokens signed with an asymmetric algorithm must be rejected even if the
// header claims otherwise.
func TestParseToken_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": float64(1),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := NewService("test-secret", time.Hour)
	if _, err := svc.ParseToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_MissingSubject(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ParseToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

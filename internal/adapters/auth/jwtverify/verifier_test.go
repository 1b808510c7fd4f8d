package jwtverify

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret []byte, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifier_ValidToken(t *testing.T) {
	secret := []byte("test-secret")
	v := New(secret, "")

	token := signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"name":  "Ana",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Name != "Ana" || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifier_LegacyIDClaim(t *testing.T) {
	// tokens viejos traen "id" en vez de "sub"
	secret := []byte("test-secret")
	v := New(secret, "")

	token := signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-2" {
		t.Fatalf("expected user-2, got %q", claims.UserID)
	}
}

func TestVerifier_RejectsBadSignature(t *testing.T) {
	v := New([]byte("right-secret"), "")

	token := signToken(t, []byte("wrong-secret"), jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifier_RejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	v := New(secret, "")

	token := signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifier_RejectsMissingSubject(t *testing.T) {
	secret := []byte("test-secret")
	v := New(secret, "")

	token := signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken without sub/id, got %v", err)
	}
}

func TestVerifier_IssuerMismatch(t *testing.T) {
	secret := []byte("test-secret")
	v := New(secret, "adoption-hub")

	token := signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"iss": "otro-emisor",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for issuer mismatch, got %v", err)
	}
}

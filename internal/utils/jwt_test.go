package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
    at, err := NewAccessToken("test-secret", 42, "RECEPTIONIST", 15)
    if err != nil {
        t.Fatalf("issue: %v", err)
    }
    if remaining := time.Until(at.Exp); remaining < 14*time.Minute || remaining > 15*time.Minute {
        t.Fatalf("expiry %s not ~15m out", at.Exp)
    }

    tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("test-secret"), nil
    })
    if err != nil || !tok.Valid {
        t.Fatalf("parse back: %v", err)
    }
    claims := tok.Claims.(jwt.MapClaims)
    if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
        t.Fatalf("sub = %v, want 42", claims["sub"])
    }
    if claims["role"] != "RECEPTIONIST" {
        t.Fatalf("role = %v, want RECEPTIONIST", claims["role"])
    }
}

func TestRefreshTokenHashing(t *testing.T) {
    rt, err := NewRefreshToken(7)
    if err != nil {
        t.Fatalf("issue: %v", err)
    }
    if len(rt.Raw) != 96 {
        t.Fatalf("raw length = %d, want 96 hex chars", len(rt.Raw))
    }
    if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
        t.Fatal("hash must be deterministic")
    }
    if HashRefreshRaw(rt.Raw) == rt.Raw {
        t.Fatal("hash must differ from the raw token")
    }

    other, err := NewRefreshToken(7)
    if err != nil {
        t.Fatalf("issue: %v", err)
    }
    if other.Raw == rt.Raw {
        t.Fatal("two tokens should never collide")
    }
}

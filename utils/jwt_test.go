package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionJWTRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := GenerateSessionJWT("abc-123", secret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	id, err := ParseSessionJWT(tok, secret)
	if err != nil || id != "abc-123" {
		t.Fatalf("parse = %q, %v", id, err)
	}

	if _, err := ParseSessionJWT(tok, []byte("other")); err == nil {
		t.Fatal("wrong secret should fail")
	}
	if _, err := ParseSessionJWT("not.a.token", secret); err == nil {
		t.Fatal("garbage should fail")
	}
}

func TestSessionJWTRejects(t *testing.T) {
	secret := []byte("s3cret")

	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sessionId": "abc",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	}).SignedString(secret)
	if _, err := ParseSessionJWT(expired, secret); err == nil {
		t.Fatal("expired token should fail")
	}

	noID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	if _, err := ParseSessionJWT(noID, secret); err == nil {
		t.Fatal("token without a session id should fail")
	}
}

func TestGenerateRandomToken(t *testing.T) {
	a, b := GenerateRandomToken(32), GenerateRandomToken(32)
	if len(a) != 32 || a == b {
		t.Fatalf("tokens %q and %q", a, b)
	}
}

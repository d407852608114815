package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateSignalToken(t *testing.T) {
	sec := "secret123"
	mid := "m1"
	exp := time.Now().Add(5 * time.Minute).Unix()

	tok := GenerateSignalToken(sec, mid, exp)

	gotMID, gotExp, err := ValidateSignalToken(sec, tok, mid, time.Now(), 60)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if gotMID != mid || gotExp != exp {
		t.Fatalf("mismatch: %s/%d", gotMID, gotExp)
	}
}

func TestSignalTokenBadSignature(t *testing.T) {
	sec := "secret123"
	mid := "m1"
	exp := time.Now().Add(5 * time.Minute).Unix()
	tok := GenerateSignalToken(sec, mid, exp)

	// flip a char
	if tok[0] == 'A' {
		tok = "B" + tok[1:]
	} else {
		tok = "A" + tok[1:]
	}

	if _, _, err := ValidateSignalToken(sec, tok, mid, time.Now(), 60); err == nil {
		t.Fatalf("expected error for tampered token")
	}
}

func TestSignalTokenExpired(t *testing.T) {
	sec := "secret123"
	exp := time.Now().Add(-10 * time.Minute).Unix()
	tok := GenerateSignalToken(sec, "m1", exp)

	if _, _, err := ValidateSignalToken(sec, tok, "m1", time.Now(), 60); err != ErrTokenExp {
		t.Fatalf("expected ErrTokenExp, got %v", err)
	}
}

func TestSignalTokenMeetingMismatch(t *testing.T) {
	sec := "secret123"
	exp := time.Now().Add(5 * time.Minute).Unix()
	tok := GenerateSignalToken(sec, "m1", exp)

	if _, _, err := ValidateSignalToken(sec, tok, "other", time.Now(), 60); err != ErrTokenMID {
		t.Fatalf("expected ErrTokenMID, got %v", err)
	}
}

func TestMintRoomToken(t *testing.T) {
	now := time.Now()
	signed, err := MintRoomToken("key1", "supersecret", "room-1", time.Hour, now)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (any, error) {
		return []byte("supersecret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["apikey"] != "key1" {
		t.Fatalf("expected apikey claim, got %v", claims["apikey"])
	}
	if claims["roomId"] != "room-1" {
		t.Fatalf("expected roomId claim, got %v", claims["roomId"])
	}
}

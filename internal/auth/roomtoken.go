package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MintRoomToken signs the join token the conferencing service expects: an
// HS256 JWT carrying the API key and the join permission, optionally pinned
// to one room.
func MintRoomToken(apiKey, apiSecret, roomID string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"apikey":      apiKey,
		"permissions": []string{"allow_join"},
		"version":     2,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}
	if roomID != "" {
		claims["roomId"] = roomID
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(apiSecret))
}

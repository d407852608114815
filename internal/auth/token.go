package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTokenFormat = errors.New("invalid token format")
	ErrTokenSig    = errors.New("invalid token signature")
	ErrTokenExp    = errors.New("token expired")
	ErrTokenMID    = errors.New("meeting id mismatch")
)

// GenerateSignalToken builds the bearer token a browser client presents on
// the signaling WebSocket.
// Format: base64url(meeting_id + "." + exp_unix + "." + hex(hmac_sha256(secret, meeting_id+"."+exp)))
func GenerateSignalToken(secret, meetingID string, expUnix int64) string {
	msg := meetingID + "." + strconv.FormatInt(expUnix, 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.RawURLEncoding.EncodeToString([]byte(msg + "." + sig))
}

// ValidateSignalToken parses and validates the token, returning the
// embedded meeting id and expiry.
func ValidateSignalToken(secret, token, expectMeetingID string, now time.Time, skewSeconds int) (string, int64, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", 0, ErrTokenFormat
	}
	parts := strings.Split(string(b), ".")
	if len(parts) != 3 {
		return "", 0, ErrTokenFormat
	}
	mid, expStr, sigHex := parts[0], parts[1], parts[2]
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return "", 0, ErrTokenFormat
	}
	if expectMeetingID != "" && mid != expectMeetingID {
		return "", 0, ErrTokenMID
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(mid + "." + expStr))
	want := mac.Sum(nil)
	got, err := hex.DecodeString(sigHex)
	if err != nil {
		return "", 0, ErrTokenFormat
	}
	if !hmac.Equal(want, got) {
		return "", 0, ErrTokenSig
	}
	if now.Unix() > exp+int64(skewSeconds) {
		return "", 0, ErrTokenExp
	}
	return mid, exp, nil
}

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// CreateSessionToken builds a signed session token from a user ID.
func CreateSessionToken(userID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(userID))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(userID)) + "." + sig
}

// VerifySessionToken checks a token's signature and returns the user ID.
func VerifySessionToken(token string, secret []byte) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", errors.New("invalid token format")
	}
	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", err
	}
	userID := string(payload)

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return "", errors.New("invalid signature")
	}
	return userID, nil
}

const sessionCookieName = "contactdesk_session"
const minSecretLen = 32

// SessionCookieName returns the session cookie name.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes derives the signing key from a secret string,
// zero-padding to a 32-byte minimum.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}

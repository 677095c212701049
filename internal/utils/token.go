package utils // package utils provides helpers for guest session tokens

import (
	"crypto/rand"  // secure random generation for session ids
	"encoding/hex" // hex encoding of random bytes
	"errors"       // sentinel for parse failures
	"time"         // expiration arithmetic

	"github.com/golang-jwt/jwt/v5" // JWT library for signing and parsing
)

// ErrInvalidSessionToken is returned when a presented token cannot be
// verified or carries no usable session id.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionToken is an anonymous shopper identity.  The storefront has
// no accounts: a browser asks for a session once and presents the
// signed token on every cart and order request.  The session id is
// the JWT subject and doubles as the cart key suffix in Redis.
type SessionToken struct {
	Token     string    // the serialized signed JWT
	SessionID string    // random id embedded as the subject claim
	Exp       time.Time // UTC expiration time
}

// NewSessionToken mints a fresh HS256-signed session token with a
// random 16-byte hex session id and the given TTL in minutes.
func NewSessionToken(secret string, ttlMin int) (SessionToken, error) {
	sid, err := randomHex(16)
	if err != nil {
		return SessionToken{}, err
	}
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": sid,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, SessionID: sid, Exp: exp}, nil
}

// ParseSessionID verifies a session token and returns the embedded
// session id.  Only HMAC-signed tokens are accepted.
func ParseSessionID(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidSessionToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSessionToken
	}
	sid, ok := claims["sub"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSessionToken
	}
	return sid, nil
}

// randomHex returns a hex string built from n bytes of secure random
// data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

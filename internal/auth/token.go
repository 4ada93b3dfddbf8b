// Package auth provides credential primitives: the signed token codec,
// the password hasher, and request identity context helpers.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token the codec cannot accept:
// malformed structure, bad signature, or wrong signing algorithm.
// Callers must not expose which of these failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded payload of a signed token. Subject carries the
// user id; expiry is absolute epoch seconds.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec issues and validates stateless signed tokens using
// HMAC-SHA256 over a shared secret. There is no server-side session
// store; a token cannot be revoked before its natural expiry.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec from the configured shared secret.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Issue produces a signed token for subject expiring after ttl.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and structure and returns the claim set.
// It deliberately does not check expiry; the authentication gate owns
// that check so a freshly-expired token and an active one decode the
// same way here.
func (c *TokenCodec) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC to prevent algorithm confusion.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

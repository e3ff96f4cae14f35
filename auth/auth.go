package auth

import (
	"crypto/hmac"
	"errors"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// ValidateAdminKey checks a provided admin key against the configured one
// in constant time. An empty configured key never validates.
func ValidateAdminKey(provided, expected string) error {
	if expected == "" || !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// SecureCompare reports whether two secrets are equal in constant time.
// Used for the webhook secret-token check on inbound deliveries.
func SecureCompare(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

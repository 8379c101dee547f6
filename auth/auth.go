// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidSession  = errors.New("invalid session id")
)

// MaxSessionIDLen bounds client-supplied session identifiers
const MaxSessionIDLen = 128

// GenerateSessionID creates a fresh random session identifier (UUID v4)
func GenerateSessionID() string {
	return uuid.NewString()
}

// ValidSessionID checks that a client-supplied session ID is non-empty,
// bounded, and limited to URL-safe characters. Sessions are untrusted;
// this only keeps garbage out of the stores.
func ValidSessionID(id string) error {
	if id == "" || len(id) > MaxSessionIDLen {
		return ErrInvalidSession
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return ErrInvalidSession
		}
	}
	return nil
}

// ValidateAdminKey compares the provided key with the configured one
// in constant time. An empty configured key never validates.
func ValidateAdminKey(provided, expected string) error {
	if expected == "" || provided == "" {
		return ErrInvalidAdminKey
	}
	if !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for abuse auditing
	return hex.EncodeToString(sum[:8])
}

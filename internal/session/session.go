// Package session issues the opaque identifiers that scope an anonymous
// visitor's photos. There is no account system behind them; the client
// persists the identifier locally and presents it on every request.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Prefix marks an identifier as session-scoped.
const Prefix = "session_"

const randomBytes = 12

// NewID returns a fresh session identifier of the form "session_<hex>".
func NewID() string {
	b := make([]byte, randomBytes)
	_, _ = rand.Read(b)
	return Prefix + hex.EncodeToString(b)
}

// Valid reports whether id has the shape of an issued session identifier.
// It does not prove the identifier was ever issued; scoping alone protects
// records, so shape checking is all the handlers need.
func Valid(id string) bool {
	if !strings.HasPrefix(id, Prefix) {
		return false
	}
	suffix := strings.TrimPrefix(id, Prefix)
	if len(suffix) < 2*randomBytes {
		return false
	}
	for _, r := range suffix {
		if !isLowerHexOrDigit(r) {
			return false
		}
	}
	return true
}

func isLowerHexOrDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')
}

package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordScheme selects how new passwords are hashed.
//
// SchemeSHA256 is the unsalted single-round scheme the existing user files
// contain; it stays the default for on-disk compatibility. SchemeBcrypt is
// the salted, iterated upgrade a deployment can opt into via configuration.
type PasswordScheme string

const (
	SchemeSHA256 PasswordScheme = "sha256"
	SchemeBcrypt PasswordScheme = "bcrypt"
)

// Hasher hashes and verifies passwords. Verification recognizes both schemes
// by hash shape, so a users file can hold a mix during a migration.
type Hasher struct {
	scheme PasswordScheme
	cost   int
}

// NewHasher builds a Hasher for the given scheme. An empty or unknown scheme
// falls back to SchemeSHA256.
func NewHasher(scheme PasswordScheme) *Hasher {
	if scheme != SchemeBcrypt {
		scheme = SchemeSHA256
	}
	return &Hasher{scheme: scheme, cost: bcrypt.DefaultCost}
}

// NewHasherForTest uses the minimum bcrypt cost so test suites stay fast.
func NewHasherForTest(scheme PasswordScheme) *Hasher {
	h := NewHasher(scheme)
	h.cost = bcrypt.MinCost
	return h
}

// Hash returns the stored form of password under the configured scheme.
func (h *Hasher) Hash(password []byte) (string, error) {
	switch h.scheme {
	case SchemeBcrypt:
		hashed, err := bcrypt.GenerateFromPassword(password, h.cost)
		if err != nil {
			return "", fmt.Errorf("hashing password: %w", err)
		}
		return string(hashed), nil
	default:
		sum := sha256.Sum256(password)
		return hex.EncodeToString(sum[:]), nil
	}
}

// Verify reports whether password matches the stored hash. bcrypt hashes are
// recognized by their "$2" prefix; anything else is compared as SHA-256 hex
// in constant time.
func (h *Hasher) Verify(stored string, password []byte) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), password) == nil
	}
	sum := sha256.Sum256(password)
	candidate := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

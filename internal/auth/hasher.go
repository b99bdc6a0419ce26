package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt cost factor used when none is configured.
const DefaultHashCost = 10

// Hasher hashes and verifies credentials with bcrypt. Each Hash call salts
// independently, so hashing the same plaintext twice yields different digests.
type Hasher struct {
	cost int
}

// NewHasher creates a hasher with the given bcrypt cost factor. Costs outside
// bcrypt's supported range fall back to DefaultHashCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of the given plaintext. Hashing failures are
// fatal and propagate unchanged.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

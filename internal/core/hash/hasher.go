// Package hash implements one-way password hashing on top of bcrypt.
package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-api/internal/core/domain"
)

// DefaultCost is the bcrypt work factor used when no cost is configured.
const DefaultCost = 10

// Hasher produces and verifies salted bcrypt digests with a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given work factor. Costs outside the
// range bcrypt accepts fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted digest of plaintext. The plaintext is never logged
// or retained.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A mismatch is not an
// error; a digest bcrypt cannot parse yields domain.ErrHashFormat.
func (h *Hasher) Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, domain.ErrHashFormat
	}
}

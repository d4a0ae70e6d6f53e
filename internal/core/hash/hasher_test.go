package hash

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-api/internal/core/domain"
)

// MinCost keeps the tests fast; production cost comes from config.
func testHasher() *Hasher {
	return NewHasher(bcrypt.MinCost)
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := testHasher()

	digest, err := h.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "" || digest == "s3cret-password" {
		t.Fatalf("expected salted digest, got %q", digest)
	}

	ok, err := h.Verify("s3cret-password", digest)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}
}

func TestHasher_VerifyMismatchIsNotAnError(t *testing.T) {
	h := testHasher()

	digest, err := h.Hash("right-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := h.Verify("wrong-password", digest)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := testHasher()

	_, err := h.Verify("anything", "not-a-bcrypt-digest")
	if !errors.Is(err, domain.ErrHashFormat) {
		t.Fatalf("expected ErrHashFormat, got %v", err)
	}
}

func TestHasher_SaltedDigestsDiffer(t *testing.T) {
	h := testHasher()

	d1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	d2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("expected distinct salts to produce distinct digests")
	}
}

func TestHasher_OutOfRangeCostFallsBack(t *testing.T) {
	h := NewHasher(99)
	if h.cost != DefaultCost {
		t.Fatalf("expected cost %d, got %d", DefaultCost, h.cost)
	}
}

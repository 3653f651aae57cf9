package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if !h.Compare(hash, "s3cret") {
		t.Fatal("expected password to match")
	}
	if h.Compare(hash, "wrong") {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h, _ := NewPasswordHasher(bcrypt.MinCost)
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatal("expected different hashes for the same password")
	}
}

func TestPasswordHasher_ClampsCost(t *testing.T) {
	h, err := NewPasswordHasher(1)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	if h.cost != bcrypt.MinCost {
		t.Fatalf("expected cost clamped to %d, got %d", bcrypt.MinCost, h.cost)
	}
	h.CompareDummy("anything")
}

package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_GenerateSalt(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}

	second, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	if first == second {
		t.Error("expected salts to differ across calls")
	}
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	salt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	hash, err := h.Hash(salt, "correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if err := h.Compare(hash, salt, "correct horse battery staple"); err != nil {
		t.Errorf("expected matching password to compare, got %v", err)
	}
	if err := h.Compare(hash, salt, "wrong password"); err == nil {
		t.Error("expected wrong password to fail compare")
	}
	if err := h.Compare(hash, "0000", "correct horse battery staple"); err == nil {
		t.Error("expected wrong salt to fail compare")
	}
}

func TestBcryptHasher_SaltChangesHashInput(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("salt-a", "password1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := h.Compare(hash, "salt-b", "password1"); err == nil {
		t.Error("expected hash made with a different salt to fail compare")
	}
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	// The sha256 pre-hash keeps inputs under bcrypt's 72-byte limit.
	h := NewBcryptHasher(bcrypt.MinCost)

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}

	salt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	hash, err := h.Hash(salt, string(long))
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := h.Compare(hash, salt, string(long)); err != nil {
		t.Errorf("expected long password to round-trip, got %v", err)
	}
}

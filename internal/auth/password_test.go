package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "secret1" {
		t.Fatal("Hash() returned the plain password")
	}

	ok, err := hasher.Compare(hash, "secret1")
	if err != nil || !ok {
		t.Fatalf("Compare(correct) = %v, %v, want true, nil", ok, err)
	}

	ok, err = hasher.Compare(hash, "secret2")
	if err != nil || ok {
		t.Fatalf("Compare(wrong) = %v, %v, want false, nil", ok, err)
	}

	if _, err := hasher.Compare("not-a-hash", "secret1"); err == nil {
		t.Fatal("Compare(malformed hash) error = nil, want error")
	}
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	if got := NewBcryptHasher(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want %d", got, bcrypt.DefaultCost)
	}
	if got := NewBcryptHasher(bcrypt.MaxCost + 1).cost; got != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want %d", got, bcrypt.DefaultCost)
	}
}

func TestBcryptHasherLongPassword(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	password := strings.Repeat("p", 100)

	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash(100 bytes) error = %v", err)
	}

	ok, err := hasher.Compare(hash, password)
	if err != nil || !ok {
		t.Fatalf("Compare(same long password) = %v, %v, want true, nil", ok, err)
	}

	ok, err = hasher.Compare(hash, strings.Repeat("p", 72))
	if err != nil || !ok {
		t.Fatalf("Compare(first 72 bytes) = %v, %v, want true, nil", ok, err)
	}

	ok, err = hasher.Compare(hash, strings.Repeat("p", 71))
	if err != nil || ok {
		t.Fatalf("Compare(71 bytes) = %v, %v, want false, nil", ok, err)
	}
}

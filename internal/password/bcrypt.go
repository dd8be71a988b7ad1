// Package password hashes and verifies user passwords with bcrypt.
// The stored hash carries its own salt and cost, so verification needs
// nothing but the hash string and the candidate.
package password

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest input bcrypt accepts.
const MaxBytes = 72

var (
	ErrMismatch = errors.New("password does not match")
	ErrTooLong  = errors.New("password exceeds 72 bytes")
)

type Hasher struct {
	cost  int
	dummy func() ([]byte, error)
}

func NewHasher(cost int) *Hasher {
	return &Hasher{
		cost: cost,
		dummy: sync.OnceValues(func() ([]byte, error) {
			return bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
		}),
	}
}

func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Compare returns ErrMismatch when plain does not produce hash.
func (h *Hasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("bcrypt: %w", err)
}

// CompareDummy spends the same work as Compare against a throwaway hash.
// Login calls it for unknown emails so both failure paths take equal time.
func (h *Hasher) CompareDummy(plain string) {
	hash, err := h.dummy()
	if err != nil {
		return
	}
	_ = bcrypt.CompareHashAndPassword(hash, []byte(plain))
}

package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// OperatorStore holds per-operator bcrypt password hashes.
type OperatorStore struct {
	hashes map[string][]byte
}

// ParseOperators builds a store from "username:bcrypt-hash" entries.
func ParseOperators(entries []string) (*OperatorStore, error) {
	store := &OperatorStore{hashes: make(map[string][]byte, len(entries))}
	for _, entry := range entries {
		name, hash, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" || hash == "" {
			return nil, fmt.Errorf("malformed operator entry %q", entry)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("operator %s: %w", name, err)
		}
		store.hashes[name] = []byte(hash)
	}
	return store, nil
}

// NewOperatorStore hashes plain passwords. Intended for tests and seeding.
func NewOperatorStore(passwords map[string]string) (*OperatorStore, error) {
	store := &OperatorStore{hashes: make(map[string][]byte, len(passwords))}
	for name, pw := range passwords {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		store.hashes[name] = hash
	}
	return store, nil
}

// HashPassword produces the hash half of an operator entry.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *OperatorStore) Len() int {
	return len(s.hashes)
}

// Has reports whether username is a configured operator.
func (s *OperatorStore) Has(username string) bool {
	_, ok := s.hashes[username]
	return ok
}

// Verify checks the password; unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *OperatorStore) Verify(username, password string) error {
	hash, ok := s.hashes[username]
	if !ok {
		return ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrUnauthorized
		}
		return err
	}
	return nil
}

package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// RevocationStore tracks, per account email, the fingerprint of the one
// refresh token that is currently honored. Recording a new fingerprint
// implicitly revokes the previous one; removing the entry revokes all
// outstanding refresh tokens for that account.
type RevocationStore struct {
	mu      sync.Mutex
	current map[string]string
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{current: map[string]string{}}
}

// Fingerprint derives the comparable identity of a token string.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *RevocationStore) RecordValid(key string, fingerprint string) {
	s.mu.Lock()
	s.current[key] = fingerprint
	s.mu.Unlock()
}

func (s *RevocationStore) IsValid(key string, fingerprint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded, exists := s.current[key]
	return exists && recorded == fingerprint
}

// Invalidate drops the entry for key. Used on logout; every refresh
// token for the account is rejected from this point on, expired or not.
func (s *RevocationStore) Invalidate(key string) {
	s.mu.Lock()
	delete(s.current, key)
	s.mu.Unlock()
}

// Rotate replaces oldFingerprint with newFingerprint if and only if
// oldFingerprint is still the recorded one. The check and the swap are
// a single critical section, so two concurrent renewals presenting the
// same refresh token admit exactly one winner.
func (s *RevocationStore) Rotate(key string, oldFingerprint string, newFingerprint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded, exists := s.current[key]
	if !exists || recorded != oldFingerprint {
		return false
	}

	s.current[key] = newFingerprint
	return true
}

// Len reports the number of tracked accounts.
func (s *RevocationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.current)
}

package revocation

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps revoked JTIs in memory for tests/dev and single-node
// deployments without Redis.
type InMemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> expiry of the revocation entry
}

// NewInMemory constructs an empty in-memory revocation store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{revoked: make(map[string]time.Time)}
}

func (s *InMemoryStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (s *InMemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	expiry, ok := s.revoked[jti]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		// Entry outlived the token it shadowed; drop it lazily.
		s.mu.Lock()
		delete(s.revoked, jti)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

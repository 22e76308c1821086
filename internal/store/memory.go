package store

import (
	"context"
	"sync"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
)

// InMemoryCredentialStore holds identity records in memory. Records are
// loaded once at startup; the mutex only guards against future mutation
// paths (e.g. registration) being added.
type InMemoryCredentialStore struct {
	mu         sync.RWMutex
	identities map[string]core.Identity
}

func NewInMemoryCredentialStore(identities []core.Identity) *InMemoryCredentialStore {
	m := make(map[string]core.Identity, len(identities))
	for _, id := range identities {
		m[id.ID] = id
	}
	return &InMemoryCredentialStore{identities: m}
}

func (s *InMemoryCredentialStore) FindIdentity(_ context.Context, id string) (*core.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.identities[id]
	if !ok {
		return nil, core.ErrIdentityNotFound
	}
	return &identity, nil
}

func (s *InMemoryCredentialStore) ListIdentities(_ context.Context) ([]core.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identities := make([]core.Identity, 0, len(s.identities))
	for _, id := range s.identities {
		identities = append(identities, id)
	}
	return identities, nil
}

package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/sentinel"
)

// MemoryStore is an in-memory identity.Store for tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]identity.Identity
	byEmail map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[uuid.UUID]identity.Identity),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) Insert(_ context.Context, ident identity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(ident.Email)
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrConflict
	}
	s.byID[ident.ID] = ident
	s.byEmail[key] = ident.ID
	return nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (identity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return identity.Identity{}, sentinel.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (identity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ident, ok := s.byID[id]
	if !ok {
		return identity.Identity{}, sentinel.ErrNotFound
	}
	return ident, nil
}

// Delete removes an identity. Used by tests to simulate accounts deleted after
// a token was issued.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ident, ok := s.byID[id]; ok {
		delete(s.byEmail, strings.ToLower(ident.Email))
		delete(s.byID, id)
	}
}

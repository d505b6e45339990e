package store

import (
	"context"
	"sync"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/audit"
)

// MemoryStore is an in-memory audit.Store for tests. Entries are kept in
// append order and returned newest first, matching the Postgres ordering.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStore) ListByRecord(_ context.Context, workflow, recordID string) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []audit.Entry{}
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.Workflow == workflow && e.RecordID == recordID {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

func (s *MemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := []audit.Entry{}
	for i := len(s.entries) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, s.entries[i])
	}
	return recent, nil
}

// Len reports how many entries have been appended. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Package memory holds in-process stores used when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/honeycarbs/jobflow/internal/domain"
)

// PreferenceStore is a map backed preference store
type PreferenceStore struct {
	mu    sync.RWMutex
	items map[domain.PreferenceID]domain.Preference
}

// NewPreferenceStore returns an empty store
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{items: make(map[domain.PreferenceID]domain.Preference)}
}

// Save inserts or replaces the preference with the same ID
func (s *PreferenceStore) Save(_ context.Context, p domain.Preference) error {
	s.mu.Lock()
	s.items[p.ID] = p
	s.mu.Unlock()
	return nil
}

// Get returns domain.ErrNotFound for unknown ids
func (s *PreferenceStore) Get(_ context.Context, id domain.PreferenceID) (domain.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	if !ok {
		return domain.Preference{}, errors.Wrapf(domain.ErrNotFound, "preference %s", id)
	}
	return p, nil
}

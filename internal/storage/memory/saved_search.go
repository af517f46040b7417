package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/honeycarbs/jobflow/internal/domain"
)

// SavedSearchStore is a map backed saved-search store
type SavedSearchStore struct {
	mu    sync.RWMutex
	items map[domain.SavedSearchID]domain.SavedSearch
}

// NewSavedSearchStore returns an empty store
func NewSavedSearchStore() *SavedSearchStore {
	return &SavedSearchStore{items: make(map[domain.SavedSearchID]domain.SavedSearch)}
}

// Save inserts or replaces the saved search with the same ID
func (s *SavedSearchStore) Save(_ context.Context, saved domain.SavedSearch) error {
	s.mu.Lock()
	s.items[saved.ID] = saved
	s.mu.Unlock()
	return nil
}

// Get returns domain.ErrNotFound for unknown ids
func (s *SavedSearchStore) Get(_ context.Context, id domain.SavedSearchID) (domain.SavedSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	saved, ok := s.items[id]
	if !ok {
		return domain.SavedSearch{}, errors.Wrapf(domain.ErrNotFound, "saved search %s", id)
	}
	return saved, nil
}

// List returns saved searches oldest first, ties ordered by ID
func (s *SavedSearchStore) List(_ context.Context) ([]domain.SavedSearch, error) {
	s.mu.RLock()
	out := make([]domain.SavedSearch, 0, len(s.items))
	for _, saved := range s.items {
		out = append(out, saved)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

// Delete returns domain.ErrNotFound when id is not stored
func (s *SavedSearchStore) Delete(_ context.Context, id domain.SavedSearchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return errors.Wrapf(domain.ErrNotFound, "saved search %s", id)
	}
	delete(s.items, id)
	return nil
}

package store

import (
	"sync"

	"github.com/gcbaptista/inverted-index/index"
	"github.com/gcbaptista/inverted-index/internal/errors"
)

// IndexStore is a registry of built indexes keyed by source location.
// It remembers insertion order: the most recent index is the one whose
// location was first put last. Putting an existing location replaces its
// index in place and keeps its position.
type IndexStore struct {
	mu      sync.RWMutex
	indexes map[string]*index.InvertedIndex
	order   []string // locations, oldest first
}

// NewIndexStore creates an empty IndexStore.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		indexes: make(map[string]*index.InvertedIndex),
	}
}

// Put stores ii under location, replacing any previous index for it.
func (s *IndexStore) Put(location string, ii *index.InvertedIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.indexes[location]; !exists {
		s.order = append(s.order, location)
	}
	s.indexes[location] = ii
}

// Get returns the index stored under location.
func (s *IndexStore) Get(location string) (*index.InvertedIndex, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ii, ok := s.indexes[location]
	return ii, ok
}

// All returns a snapshot of every stored index keyed by location.
func (s *IndexStore) All() map[string]*index.InvertedIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make(map[string]*index.InvertedIndex, len(s.indexes))
	for location, ii := range s.indexes {
		all[location] = ii
	}
	return all
}

// Recent returns the most recently stored index and its location.
// It fails with an IndexNotFoundError when the store is empty.
func (s *IndexStore) Recent() (string, *index.InvertedIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return "", nil, errors.NewIndexNotFoundError("")
	}
	location := s.order[len(s.order)-1]
	return location, s.indexes[location], nil
}

// Remove deletes the index stored under location and reports whether one existed.
func (s *IndexStore) Remove(location string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.indexes[location]; !exists {
		return false
	}
	delete(s.indexes, location)
	s.removeFromOrderUnsafe(location)
	return true
}

// Locations returns the stored locations, oldest first.
func (s *IndexStore) Locations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locations := make([]string, len(s.order))
	copy(locations, s.order)
	return locations
}

// Len returns the number of stored indexes.
func (s *IndexStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.indexes)
}

// removeFromOrderUnsafe assumes the caller holds the write lock.
func (s *IndexStore) removeFromOrderUnsafe(location string) {
	for i, l := range s.order {
		if l == location {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

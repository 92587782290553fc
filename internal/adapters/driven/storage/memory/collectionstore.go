package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
)

// Ensure CollectionStore implements the interface.
var _ driven.CollectionStore = (*CollectionStore)(nil)

// CollectionStore is an in-memory implementation of driven.CollectionStore.
type CollectionStore struct {
	mu          sync.RWMutex
	collections map[string]domain.Collection
}

// NewCollectionStore creates a new in-memory collection store.
func NewCollectionStore() *CollectionStore {
	return &CollectionStore{
		collections: make(map[string]domain.Collection),
	}
}

// Save stores or replaces a collection and its documents.
// Names must be unique across collections.
func (s *CollectionStore) Save(_ context.Context, collection domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.collections {
		if c.Name == collection.Name && id != collection.ID {
			return domain.ErrAlreadyExists
		}
	}
	s.collections[collection.ID] = clone(collection)
	return nil
}

// Get retrieves a collection by ID.
func (s *CollectionStore) Get(_ context.Context, id string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(c)
	return &out, nil
}

// GetByName retrieves a collection by name.
func (s *CollectionStore) GetByName(_ context.Context, name string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.collections {
		if c.Name == name {
			out := clone(c)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all collections without documents, ordered by name.
func (s *CollectionStore) List(_ context.Context) ([]domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		c.Documents = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a collection. No-op if not found.
func (s *CollectionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, id)
	return nil
}

// clone copies the document slice so callers cannot mutate stored state.
func clone(c domain.Collection) domain.Collection {
	c.Documents = append([]domain.Document(nil), c.Documents...)
	return c
}

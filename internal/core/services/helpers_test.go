package services

import (
	"context"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSource implements driven.DocumentSource for testing.
type mockSource struct {
	kind    domain.CollectionKind
	texts   []string
	keys    []string
	loadErr error
	loads   int
}

func (m *mockSource) Kind() domain.CollectionKind {
	if m.kind == "" {
		return domain.CollectionKindText
	}
	return m.kind
}

func (m *mockSource) Origin() string {
	return "mock"
}

func (m *mockSource) Load(_ context.Context) ([]domain.Document, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	docs := make([]domain.Document, len(m.texts))
	for i, text := range m.texts {
		docs[i] = domain.Document{ID: -1, Text: text}
		if i < len(m.keys) {
			docs[i].Key = m.keys[i]
		}
	}
	return docs, nil
}

// countingStore wraps a CollectionStore, counting GetByName calls and
// running afterGet once after the first one.
type countingStore struct {
	driven.CollectionStore
	gets     int
	afterGet func()
}

func (s *countingStore) GetByName(ctx context.Context, name string) (*domain.Collection, error) {
	c, err := s.CollectionStore.GetByName(ctx, name)
	s.gets++
	if s.afterGet != nil {
		hook := s.afterGet
		s.afterGet = nil
		hook()
	}
	return c, err
}

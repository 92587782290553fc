package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
	"github.com/custodia-labs/finsim/internal/core/ports/driving"
	"github.com/custodia-labs/finsim/internal/logger"
)

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

// CollectionService manages named document collections.
type CollectionService struct {
	store driven.CollectionStore
	now   func() time.Time
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store driven.CollectionStore) *CollectionService {
	return &CollectionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Ingest loads all documents from source and stores them under name.
// An existing collection of the same name keeps its ID and creation time
// but has every document replaced.
func (s *CollectionService) Ingest(
	ctx context.Context, name string, source driven.DocumentSource,
) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: document source is required", domain.ErrInvalidInput)
	}
	if !source.Kind().IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, source.Kind())
	}

	logger.Section("Ingest")
	logger.Debug("Collection: %q, kind: %s, origin: %s", name, source.Kind(), source.Origin())

	docs, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s documents: %w", source.Kind(), err)
	}
	logger.Info("Loaded %d documents", len(docs))

	now := s.now()
	collection := domain.Collection{
		ID:        uuid.New().String(),
		Name:      name,
		Kind:      source.Kind(),
		Origin:    source.Origin(),
		Documents: docs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := s.store.GetByName(ctx, name)
	switch {
	case err == nil:
		collection.ID = existing.ID
		collection.CreatedAt = existing.CreatedAt
		logger.Debug("Replacing %d documents of existing collection", len(existing.Documents))
	case isNotFound(err):
	default:
		return nil, fmt.Errorf("lookup collection: %w", err)
	}

	collection.Renumber()

	if err := s.store.Save(ctx, collection); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}
	return &collection, nil
}

// Get retrieves a collection with its documents by name.
func (s *CollectionService) Get(ctx context.Context, name string) (*domain.Collection, error) {
	return s.store.GetByName(ctx, strings.TrimSpace(name))
}

// List returns all collections without documents.
func (s *CollectionService) List(ctx context.Context) ([]domain.Collection, error) {
	return s.store.List(ctx)
}

// Delete removes a collection by name.
func (s *CollectionService) Delete(ctx context.Context, name string) error {
	collection, err := s.store.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, collection.ID)
}

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
	"github.com/custodia-labs/finsim/internal/core/ports/driving"
	"github.com/custodia-labs/finsim/internal/logger"
	"github.com/custodia-labs/finsim/internal/similarity"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// cachedIndex is a built index and the collection state it reflects.
type cachedIndex struct {
	key   string
	index *similarity.Index
}

// RetrievalService answers similarity queries over stored collections.
// Indexes are built on first use and rebuilt whenever the collection is
// reloaded or the tokenizer settings change.
type RetrievalService struct {
	store    driven.CollectionStore
	settings driving.SettingsService

	mu    sync.Mutex
	cache map[string]cachedIndex
}

// NewRetrievalService creates a new retrieval service.
// The settings parameter is optional; defaults are used when nil.
func NewRetrievalService(store driven.CollectionStore, settings driving.SettingsService) *RetrievalService {
	return &RetrievalService{
		store:    store,
		settings: settings,
		cache:    make(map[string]cachedIndex),
	}
}

// Query ranks the collection's documents against free text.
func (s *RetrievalService) Query(
	ctx context.Context, collection, text string, opts domain.QueryOptions,
) ([]domain.Match, error) {
	logger.Section("Query")
	logger.Debug("Collection: %q, text: %q, top_k: %d, min_score: %.3f",
		collection, text, opts.TopK, opts.MinScore)

	idx, _, err := s.Index(ctx, collection)
	if err != nil {
		return nil, err
	}
	matches, err := idx.QueryText(text, opts)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	logger.Info("Matches: %d", len(matches))
	return matches, nil
}

// QueryDocument ranks the collection's documents against one of them.
func (s *RetrievalService) QueryDocument(
	ctx context.Context, collection string, id int, opts domain.QueryOptions,
) ([]domain.Match, error) {
	logger.Section("Query")
	logger.Debug("Collection: %q, document: %d, top_k: %d, exclude_self: %t, min_score: %.3f",
		collection, id, opts.TopK, opts.ExcludeSelf, opts.MinScore)

	idx, _, err := s.Index(ctx, collection)
	if err != nil {
		return nil, err
	}
	matches, err := idx.QueryDocument(id, opts)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	logger.Info("Matches: %d", len(matches))
	return matches, nil
}

// QueryKey resolves key to a document and ranks against it.
// Returns domain.ErrNotFound when no document has the key.
func (s *RetrievalService) QueryKey(
	ctx context.Context, collection, key string, opts domain.QueryOptions,
) ([]domain.Match, error) {
	logger.Section("Query")
	logger.Debug("Collection: %q, key: %q, top_k: %d, exclude_self: %t, min_score: %.3f",
		collection, key, opts.TopK, opts.ExcludeSelf, opts.MinScore)

	// The key resolves against the same snapshot the index was built from.
	idx, c, err := s.Index(ctx, collection)
	if err != nil {
		return nil, err
	}
	doc, ok := c.FindByKey(key)
	if !ok {
		return nil, fmt.Errorf("%w: no document with key %q in %q", domain.ErrNotFound, key, collection)
	}
	matches, err := idx.QueryDocument(doc.ID, opts)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	logger.Info("Matches: %d", len(matches))
	return matches, nil
}

// Explain returns the n highest weighted terms of a document.
func (s *RetrievalService) Explain(ctx context.Context, collection string, id, n int) ([]string, error) {
	idx, _, err := s.Index(ctx, collection)
	if err != nil {
		return nil, err
	}
	return idx.TopTerms(id, n)
}

// Index returns the index for a collection, building it if the cached one
// is stale.
func (s *RetrievalService) Index(ctx context.Context, name string) (*similarity.Index, *domain.Collection, error) {
	name = strings.TrimSpace(name)
	collection, err := s.store.GetByName(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("collection %q: %w", name, err)
	}

	settings := domain.DefaultSettings()
	if s.settings != nil {
		if settings, err = s.settings.Get(); err != nil {
			return nil, nil, fmt.Errorf("settings: %w", err)
		}
	}

	key := fmt.Sprintf("%s@%d/n=%d/stop=%t/stem=%t",
		collection.ID, collection.UpdatedAt.UnixNano(), len(collection.Documents),
		settings.StopWords, settings.Stemming)

	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[name]; ok && cached.key == key {
		logger.Debug("Reusing index for %q", name)
		return cached.index, collection, nil
	}

	var opts []similarity.Option
	if settings.StopWords {
		opts = append(opts, similarity.WithEnglishStopWords())
	}
	if settings.Stemming {
		opts = append(opts, similarity.WithStemming())
	}
	idx := similarity.Build(collection.Documents, opts...)
	logger.Info("Built index for %q: %d documents, %d terms", name, idx.Len(), idx.VocabularySize())

	s.cache[name] = cachedIndex{key: key, index: idx}
	return idx, collection, nil
}

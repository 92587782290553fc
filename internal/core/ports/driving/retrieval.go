package driving

import (
	"context"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// RetrievalService answers nearest-match queries over a collection.
type RetrievalService interface {
	// Query ranks the collection's documents against free text.
	Query(ctx context.Context, collection, text string, opts domain.QueryOptions) ([]domain.Match, error)

	// QueryDocument ranks the collection's documents against one of them.
	QueryDocument(ctx context.Context, collection string, id int, opts domain.QueryOptions) ([]domain.Match, error)

	// QueryKey resolves a document key and ranks against that document.
	QueryKey(ctx context.Context, collection, key string, opts domain.QueryOptions) ([]domain.Match, error)

	// Explain returns the highest weighted terms of a document.
	Explain(ctx context.Context, collection string, id, n int) ([]string, error)
}

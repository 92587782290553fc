package driving

import (
	"context"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
)

// CollectionService manages named document collections.
type CollectionService interface {
	// Ingest loads all documents from source and stores them under name,
	// replacing any previous contents of that collection.
	Ingest(ctx context.Context, name string, source driven.DocumentSource) (*domain.Collection, error)

	// Get retrieves a collection with its documents by name.
	Get(ctx context.Context, name string) (*domain.Collection, error)

	// List returns all collections without documents.
	List(ctx context.Context) ([]domain.Collection, error)

	// Delete removes a collection by name.
	Delete(ctx context.Context, name string) error
}

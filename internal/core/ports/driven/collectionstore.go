package driven

import (
	"context"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// CollectionStore persists collections together with their documents.
// Saving a collection replaces all of its documents.
type CollectionStore interface {
	// Save stores or replaces a collection and its documents.
	Save(ctx context.Context, collection domain.Collection) error

	// Get retrieves a collection with its documents by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Collection, error)

	// GetByName retrieves a collection with its documents by name.
	// Returns domain.ErrNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*domain.Collection, error)

	// List returns all collections without their documents, ordered by name.
	List(ctx context.Context) ([]domain.Collection, error)

	// Delete removes a collection and its documents. No-op if not found.
	Delete(ctx context.Context, id string) error
}

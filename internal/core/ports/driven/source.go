package driven

import (
	"context"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// DocumentSource produces the ordered documents of one collection load.
// Sources perform all I/O; the core never fetches data itself.
type DocumentSource interface {
	// Kind returns the collection kind this source produces.
	Kind() domain.CollectionKind

	// Origin describes where the documents come from, for display.
	Origin() string

	// Load fetches and returns the documents. IDs are assigned by the caller.
	Load(ctx context.Context) ([]domain.Document, error)
}

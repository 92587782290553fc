package driving

import (
	"context"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// AdvisorService serves the two finance front ends: question answering
// context selection and similar trading day lookup.
type AdvisorService interface {
	// BestContext returns the article most similar to question.
	// found is false when no article clears the relevance threshold.
	BestContext(ctx context.Context, collection, question string) (match domain.Match, found bool, err error)

	// SimilarDays returns up to n trading days most similar to the given
	// date (MM/DD/YYYY) and ticker, excluding that day itself.
	SimilarDays(ctx context.Context, collection, date, ticker string, n int) ([]domain.Match, error)
}

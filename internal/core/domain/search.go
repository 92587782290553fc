package domain

// Default query parameters.
const (
	// DefaultTopK returns the single best match.
	DefaultTopK = 1

	// DefaultMinScore suppresses near-zero matches.
	DefaultMinScore = 0.1
)

// QueryOptions configures a similarity query.
type QueryOptions struct {
	// TopK is the maximum number of matches. Must be at least 1.
	TopK int

	// ExcludeSelf removes the query document from the candidates.
	// Only meaningful for document-id queries.
	ExcludeSelf bool

	// MinScore drops matches scoring below it. Zero disables filtering.
	MinScore float64
}

// DefaultQueryOptions returns the options used when the caller sets none.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		TopK:        DefaultTopK,
		ExcludeSelf: true,
		MinScore:    DefaultMinScore,
	}
}

// Match is a document paired with its cosine similarity to a query.
type Match struct {
	// Document is the matched document.
	Document Document `json:"document"`

	// Score is the cosine similarity, in [0, 1].
	Score float64 `json:"score"`
}

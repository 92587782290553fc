package domain

import (
	"fmt"
	"math"
)

// Settings holds user-tunable retrieval and ingestion parameters.
type Settings struct {
	// StopWords removes common English words before weighting.
	StopWords bool

	// Stemming reduces terms to their Snowball English stem.
	Stemming bool

	// TopK is the default number of matches returned.
	TopK int

	// MinScore is the default relevance threshold.
	MinScore float64

	// RequestsPerSecond throttles the news scraper.
	RequestsPerSecond float64

	// ArticlesPerPage caps articles taken from each listing page.
	ArticlesPerPage int

	// UserAgent is sent with scraper requests.
	UserAgent string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		StopWords:         true,
		Stemming:          false,
		TopK:              DefaultTopK,
		MinScore:          DefaultMinScore,
		RequestsPerSecond: 2,
		ArticlesPerPage:   26,
		UserAgent:         "finsim/0.1 (+https://github.com/custodia-labs/finsim)",
	}
}

// Validate checks settings ranges.
func (s Settings) Validate() error {
	if s.TopK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1, got %d", ErrInvalidInput, s.TopK)
	}
	if math.IsNaN(s.MinScore) || s.MinScore < 0 || s.MinScore > 1 {
		return fmt.Errorf("%w: min_score must be within [0, 1], got %v", ErrInvalidInput, s.MinScore)
	}
	if s.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests_per_second must be positive", ErrInvalidInput)
	}
	if s.ArticlesPerPage < 1 {
		return fmt.Errorf("%w: articles_per_page must be at least 1", ErrInvalidInput)
	}
	return nil
}

// QueryOptions returns query options seeded from the settings.
func (s Settings) QueryOptions() QueryOptions {
	return QueryOptions{
		TopK:        s.TopK,
		ExcludeSelf: true,
		MinScore:    s.MinScore,
	}
}

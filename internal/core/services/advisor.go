package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driving"
)

// Ensure AdvisorService implements the interface.
var _ driving.AdvisorService = (*AdvisorService)(nil)

// DefaultSimilarDays is the number of trading days SimilarDays returns
// when the caller does not choose.
const DefaultSimilarDays = 3

var tradingDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// AdvisorService selects chatbot contexts and similar trading days.
type AdvisorService struct {
	retrieval driving.RetrievalService
	settings  driving.SettingsService
}

// NewAdvisorService creates a new advisor service.
// The settings parameter is optional; defaults are used when nil.
func NewAdvisorService(retrieval driving.RetrievalService, settings driving.SettingsService) *AdvisorService {
	return &AdvisorService{
		retrieval: retrieval,
		settings:  settings,
	}
}

// BestContext returns the single article most similar to question.
// found is false when nothing reaches the configured minimum score.
func (s *AdvisorService) BestContext(
	ctx context.Context, collection, question string,
) (domain.Match, bool, error) {
	if strings.TrimSpace(question) == "" {
		return domain.Match{}, false, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	settings, err := s.currentSettings()
	if err != nil {
		return domain.Match{}, false, err
	}

	opts := domain.QueryOptions{TopK: 1, MinScore: settings.MinScore}
	matches, err := s.retrieval.Query(ctx, collection, question, opts)
	if err != nil {
		return domain.Match{}, false, err
	}
	if len(matches) == 0 {
		return domain.Match{}, false, nil
	}
	return matches[0], true, nil
}

// SimilarDays returns up to n trading days most similar to date and
// ticker. The queried day itself is excluded and no score threshold
// applies. A date not in MM/DD/YYYY form is rejected.
func (s *AdvisorService) SimilarDays(
	ctx context.Context, collection, date, ticker string, n int,
) ([]domain.Match, error) {
	date = strings.TrimSpace(date)
	if !tradingDatePattern.MatchString(date) {
		return nil, fmt.Errorf("%w: date %q must be MM/DD/YYYY", domain.ErrInvalidInput, date)
	}
	if strings.TrimSpace(ticker) == "" {
		return nil, fmt.Errorf("%w: ticker is required", domain.ErrInvalidInput)
	}
	if n <= 0 {
		n = DefaultSimilarDays
	}

	opts := domain.QueryOptions{TopK: n, ExcludeSelf: true}
	return s.retrieval.QueryKey(ctx, collection, domain.TradingDayKey(date, ticker), opts)
}

func (s *AdvisorService) currentSettings() (domain.Settings, error) {
	if s.settings == nil {
		return domain.DefaultSettings(), nil
	}
	settings, err := s.settings.Get()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("settings: %w", err)
	}
	return settings, nil
}

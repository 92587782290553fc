package mcp

import (
	"context"

	"github.com/custodia-labs/finsim/internal/core/domain"
	"github.com/custodia-labs/finsim/internal/core/ports/driven"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	matches  []domain.Match
	terms    []string
	err      error
	lastText string
	lastOpts domain.QueryOptions
}

func (m *mockRetrievalService) Query(
	_ context.Context, _ string, text string, opts domain.QueryOptions,
) ([]domain.Match, error) {
	m.lastText = text
	m.lastOpts = opts
	return m.matches, m.err
}

func (m *mockRetrievalService) QueryDocument(
	_ context.Context, _ string, _ int, opts domain.QueryOptions,
) ([]domain.Match, error) {
	m.lastOpts = opts
	return m.matches, m.err
}

func (m *mockRetrievalService) QueryKey(
	_ context.Context, _ string, _ string, opts domain.QueryOptions,
) ([]domain.Match, error) {
	m.lastOpts = opts
	return m.matches, m.err
}

func (m *mockRetrievalService) Explain(_ context.Context, _ string, _, _ int) ([]string, error) {
	return m.terms, m.err
}

// mockAdvisorService is a mock implementation of driving.AdvisorService.
type mockAdvisorService struct {
	match     domain.Match
	found     bool
	matches   []domain.Match
	err       error
	lastDate  string
	lastCount int
}

func (m *mockAdvisorService) BestContext(_ context.Context, _, _ string) (domain.Match, bool, error) {
	return m.match, m.found, m.err
}

func (m *mockAdvisorService) SimilarDays(
	_ context.Context, _, date, _ string, n int,
) ([]domain.Match, error) {
	m.lastDate = date
	m.lastCount = n
	return m.matches, m.err
}

// mockCollectionService is a mock implementation of driving.CollectionService.
type mockCollectionService struct {
	collections []domain.Collection
	collection  *domain.Collection
	err         error
}

func (m *mockCollectionService) Ingest(
	_ context.Context, _ string, _ driven.DocumentSource,
) (*domain.Collection, error) {
	return m.collection, m.err
}

func (m *mockCollectionService) Get(_ context.Context, _ string) (*domain.Collection, error) {
	return m.collection, m.err
}

func (m *mockCollectionService) List(_ context.Context) ([]domain.Collection, error) {
	return m.collections, m.err
}

func (m *mockCollectionService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(settings domain.Settings) error {
	m.settings = settings
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Reset(_ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// defaultTopK is used when a query does not set top_k and no settings
// service is wired.
const defaultTopK = 5

// errAdvisorUnavailable is returned by advisor tools when no advisor is wired.
var errAdvisorUnavailable = errors.New("mcp: advisor service not available")

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Collection string   `json:"collection" jsonschema:"name of the collection to search"`
	Text       string   `json:"text" jsonschema:"free text to compare documents against"`
	TopK       int      `json:"top_k,omitempty" jsonschema:"maximum number of matches (default retrieval.top_k)"`
	MinScore   *float64 `json:"min_score,omitempty" jsonschema:"drop matches scoring below this, 0 keeps all (default retrieval.min_score)"`
}

// SimilarDaysInput is the input schema for the similar_days tool.
type SimilarDaysInput struct {
	Collection string `json:"collection" jsonschema:"name of a ticker collection"`
	Date       string `json:"date" jsonschema:"trading day in MM/DD/YYYY form"`
	Ticker     string `json:"ticker" jsonschema:"stock ticker symbol, e.g. AAPL"`
	Count      int    `json:"count,omitempty" jsonschema:"number of similar days (default 3)"`
}

// BestContextInput is the input schema for the best_context tool.
type BestContextInput struct {
	Collection string `json:"collection" jsonschema:"name of a news collection"`
	Question   string `json:"question" jsonschema:"the user's question"`
}

// ListCollectionsInput is the input schema for the list_collections tool.
type ListCollectionsInput struct{}

// MatchesOutput is the output schema for tools returning ranked matches.
type MatchesOutput struct {
	Matches []MatchOutput `json:"matches"`
	Count   int           `json:"count"`
}

// MatchOutput represents a single ranked document.
type MatchOutput struct {
	DocumentID int               `json:"document_id"`
	Key        string            `json:"key,omitempty"`
	Title      string            `json:"title,omitempty"`
	URI        string            `json:"uri,omitempty"`
	Score      float64           `json:"score"`
	Text       string            `json:"text"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// BestContextOutput is the output schema for the best_context tool.
type BestContextOutput struct {
	Found bool         `json:"found"`
	Match *MatchOutput `json:"match,omitempty"`
}

// CollectionsOutput is the output schema for the list_collections tool.
type CollectionsOutput struct {
	Collections []CollectionOutput `json:"collections"`
}

// CollectionOutput summarises one collection.
type CollectionOutput struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Origin    string `json:"origin,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Rank the documents of a collection by similarity to free text",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar_days",
		Description: "Find the trading days most similar to a given day and ticker",
	}, s.handleSimilarDays)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "best_context",
		Description: "Pick the news article most relevant to a question, if any is relevant enough",
	}, s.handleBestContext)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_collections",
		Description: "List the loaded document collections",
	}, s.handleListCollections)
}

// queryOptions returns the configured query defaults.
func (s *Server) queryOptions() (domain.QueryOptions, error) {
	if s.ports.Settings == nil {
		opts := domain.DefaultQueryOptions()
		opts.TopK = defaultTopK
		return opts, nil
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return domain.QueryOptions{}, fmt.Errorf("loading settings: %w", err)
	}
	return settings.QueryOptions(), nil
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, MatchesOutput, error) {
	opts, err := s.queryOptions()
	if err != nil {
		return nil, MatchesOutput{}, err
	}
	if input.TopK > 0 {
		opts.TopK = input.TopK
	}
	if input.MinScore != nil {
		opts.MinScore = *input.MinScore
	}

	matches, err := s.ports.Retrieval.Query(ctx, input.Collection, input.Text, opts)
	if err != nil {
		return nil, MatchesOutput{}, err
	}
	return nil, toMatchesOutput(matches), nil
}

// handleSimilarDays handles the similar_days tool invocation.
func (s *Server) handleSimilarDays(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarDaysInput,
) (*mcp.CallToolResult, MatchesOutput, error) {
	if s.ports.Advisor == nil {
		return nil, MatchesOutput{}, errAdvisorUnavailable
	}

	matches, err := s.ports.Advisor.SimilarDays(ctx, input.Collection, input.Date, input.Ticker, input.Count)
	if err != nil {
		return nil, MatchesOutput{}, err
	}
	return nil, toMatchesOutput(matches), nil
}

// handleBestContext handles the best_context tool invocation.
func (s *Server) handleBestContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BestContextInput,
) (*mcp.CallToolResult, BestContextOutput, error) {
	if s.ports.Advisor == nil {
		return nil, BestContextOutput{}, errAdvisorUnavailable
	}

	match, found, err := s.ports.Advisor.BestContext(ctx, input.Collection, input.Question)
	if err != nil {
		return nil, BestContextOutput{}, err
	}
	if !found {
		return nil, BestContextOutput{Found: false}, nil
	}
	out := toMatchOutput(match)
	return nil, BestContextOutput{Found: true, Match: &out}, nil
}

// handleListCollections handles the list_collections tool invocation.
func (s *Server) handleListCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCollectionsInput,
) (*mcp.CallToolResult, CollectionsOutput, error) {
	output := CollectionsOutput{Collections: []CollectionOutput{}}
	if s.ports.Collection == nil {
		return nil, output, nil
	}

	collections, err := s.ports.Collection.List(ctx)
	if err != nil {
		return nil, CollectionsOutput{}, err
	}
	for i := range collections {
		output.Collections = append(output.Collections, CollectionOutput{
			Name:      collections[i].Name,
			Kind:      collections[i].Kind.String(),
			Origin:    collections[i].Origin,
			UpdatedAt: collections[i].UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return nil, output, nil
}

func toMatchesOutput(matches []domain.Match) MatchesOutput {
	output := MatchesOutput{
		Matches: make([]MatchOutput, len(matches)),
		Count:   len(matches),
	}
	for i := range matches {
		output.Matches[i] = toMatchOutput(matches[i])
	}
	return output
}

func toMatchOutput(m domain.Match) MatchOutput {
	return MatchOutput{
		DocumentID: m.Document.ID,
		Key:        m.Document.Key,
		Title:      m.Document.Title,
		URI:        m.Document.URI,
		Score:      m.Score,
		Text:       m.Document.Text,
		Metadata:   m.Document.Metadata,
	}
}

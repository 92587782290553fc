package mcp

import (
	"github.com/custodia-labs/finsim/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers similarity queries.
	Retrieval driving.RetrievalService

	// Advisor selects chatbot contexts and similar trading days.
	Advisor driving.AdvisorService

	// Collection lists stored collections.
	Collection driving.CollectionService

	// Settings supplies the configured top_k and min_score defaults.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Advisor, Collection and Settings are optional.
	return nil
}

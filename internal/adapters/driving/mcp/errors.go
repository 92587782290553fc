// Package mcp provides an MCP (Model Context Protocol) server adapter for finsim.
// It lets AI assistants query document collections by similarity.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

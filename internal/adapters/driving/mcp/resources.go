package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for finsim resources.
	uriScheme = "finsim://"

	collectionsPrefix = uriScheme + "collections/"
	documentsSegment  = "/documents"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "collections",
		Name:        "collections",
		Description: "List of all loaded collections",
		MIMEType:    "application/json",
	}, s.handleCollectionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "collections/{name}/documents",
		Name:        "collection-documents",
		Description: "Documents of a specific collection",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "collections/{name}/documents/{id}",
		Name:        "document-text",
		Description: "Text of a single document",
		MIMEType:    "text/plain",
	}, s.handleDocumentTextResource)
}

// handleCollectionsResource returns a list of all collections.
func (s *Server) handleCollectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, output, err := s.handleListCollections(ctx, nil, ListCollectionsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return jsonResult(req.Params.URI, output.Collections)
}

// handleDocumentsResource returns the documents of one collection.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Collection == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name, id, ok := parseDocumentURI(req.Params.URI)
	if !ok || id != "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	collection, err := s.ports.Collection.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("getting collection: %w", err)
	}

	type docInfo struct {
		ID    int    `json:"id"`
		Key   string `json:"key,omitempty"`
		Title string `json:"title,omitempty"`
		URI   string `json:"uri,omitempty"`
	}

	infos := make([]docInfo, len(collection.Documents))
	for i := range collection.Documents {
		doc := collection.Documents[i]
		infos[i] = docInfo{ID: doc.ID, Key: doc.Key, Title: doc.Title, URI: doc.URI}
	}
	return jsonResult(req.Params.URI, infos)
}

// handleDocumentTextResource returns the text of a single document.
func (s *Server) handleDocumentTextResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Collection == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name, rawID, ok := parseDocumentURI(req.Params.URI)
	if !ok || rawID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	collection, err := s.ports.Collection.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("getting collection: %w", err)
	}
	if id < 0 || id >= len(collection.Documents) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     collection.Documents[id].Text,
		}},
	}, nil
}

// parseDocumentURI splits finsim://collections/{name}/documents[/{id}].
// The name is path-unescaped; id is empty for the listing form.
func parseDocumentURI(uri string) (name, id string, ok bool) {
	if !strings.HasPrefix(uri, collectionsPrefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(uri, collectionsPrefix)

	i := strings.Index(rest, documentsSegment)
	if i <= 0 {
		return "", "", false
	}
	name, err := url.PathUnescape(rest[:i])
	if err != nil {
		return "", "", false
	}

	tail := rest[i+len(documentsSegment):]
	switch {
	case tail == "":
		return name, "", true
	case strings.HasPrefix(tail, "/") && len(tail) > 1 && !strings.Contains(tail[1:], "/"):
		return name, tail[1:], true
	default:
		return "", "", false
	}
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

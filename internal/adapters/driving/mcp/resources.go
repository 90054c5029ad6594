package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Pardis resources.
	uriScheme = "pardis://"

	libraryURI = uriScheme + "library"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         libraryURI,
		Name:        "library",
		Description: "Every record saved in the research library, newest first",
		MIMEType:    "application/json",
	}, s.handleLibraryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: libraryURI + "/{id}",
		Name:        "library-record",
		Description: "One library record with its notes",
		MIMEType:    "application/json",
	}, s.handleRecordResource)
}

// recordSummary is the list view of a record.
type recordSummary struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Year    string   `json:"year,omitempty"`
	DocType string   `json:"docType"`
	URI     string   `json:"uri"`
	HasFile bool     `json:"hasLocalFile"`
}

// handleLibraryResource returns a summary of every record.
func (s *Server) handleLibraryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}

	summaries := make([]recordSummary, len(records))
	for i := range records {
		summaries[i] = recordSummary{
			ID:      records[i].ID,
			Title:   records[i].Title,
			Authors: records[i].Authors,
			Year:    records[i].Year,
			DocType: string(records[i].DocType),
			URI:     libraryURI + "/" + records[i].ID,
			HasFile: records[i].HasLocalFile,
		}
	}

	return jsonResource(req.Params.URI, summaries)
}

// handleRecordResource returns one full record.
func (s *Server) handleRecordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractRecordID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Library.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}

	return jsonResource(req.Params.URI, record)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
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

// extractRecordID extracts the record ID from a URI like pardis://library/{id}.
func extractRecordID(uri string) string {
	const prefix = libraryURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}

package mcp

import (
	"github.com/custodia-labs/pardis/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search fans queries out to the remote sources.
	Search driving.FederatedSearchService

	// Library manages saved records and their files.
	Library driving.LibraryService

	// Index provides snippets of stored full text. Optional.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	return nil
}

// Package mcp provides an MCP (Model Context Protocol) server adapter for Pardis.
// It lets AI assistants run federated searches, query the local full-text index
// and read the research library.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the federated search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingLibraryService is returned when the library service is not provided.
	ErrMissingLibraryService = errors.New("mcp: library service is required")
)

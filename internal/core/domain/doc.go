// Package domain defines the core business entities for Pardis.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchResult: An ephemeral hit returned by a remote source adapter
//   - LibraryRecord: A bookmarked work persisted in the local library
//   - Note: A free-text annotation owned by a LibraryRecord
//   - IndexedDocument: The normalised text view held by the full-text index
//   - SearchFilters: Period and topic refinements for federated search
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

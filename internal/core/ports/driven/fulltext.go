package driven

import "github.com/custodia-labs/pardis/internal/core/domain"

// FullTextIndex is an inverted index over library records with
// title, authors and content fields.
// Calls are CPU-bound and safe for concurrent use.
type FullTextIndex interface {
	// Add inserts or replaces the document with doc.ID.
	// Returns domain.ErrInvalidInput for an empty id.
	Add(doc domain.IndexedDocument) error

	// Search returns up to limit ids, best match first, without duplicates.
	Search(query string, limit int) ([]string, error)

	// Remove drops id. Removing an unknown id is a no-op.
	Remove(id string)

	// Has reports whether id is indexed.
	Has(id string) bool

	// Len returns the number of indexed documents.
	Len() int

	// Reset drops every document.
	Reset()
}

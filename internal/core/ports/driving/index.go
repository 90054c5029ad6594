package driving

import "context"

// IndexService maintains and queries the local full-text index.
type IndexService interface {
	// IndexDocument extracts text from pdf and adds it to the index under id.
	// Returns false without error when the PDF has no extractable text,
	// after dropping any text indexed for an earlier file.
	IndexDocument(ctx context.Context, id, title string, authors []string, pdf []byte) (bool, error)

	// SearchLocal returns matching record ids, best first.
	// A limit of zero uses the configured default.
	SearchLocal(ctx context.Context, query string, limit int) ([]string, error)

	// Snippet returns a window of stored text for id around the first match of query.
	Snippet(ctx context.Context, id, query string) (string, error)

	// Rehydrate rebuilds the index from stored full texts and returns the
	// number of documents indexed.
	Rehydrate(ctx context.Context) (int, error)

	// Forget drops id's stored text and evicts it from the index.
	Forget(ctx context.Context, id string) error

	// Refresh re-indexes id's stored text under a new title and authors.
	// It does nothing when no text is stored.
	Refresh(ctx context.Context, id, title string, authors []string) error

	// Remove evicts id from the index. Stored text is left alone.
	Remove(id string)

	// Size returns the number of indexed documents.
	Size() int
}

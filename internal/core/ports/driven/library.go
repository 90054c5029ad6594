package driven

import (
	"context"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

// LibraryStore persists library records, their notes and extracted full text.
// It is the single source of truth; the full-text index is derived from it.
type LibraryStore interface {
	// GetAll returns every record, newest first.
	GetAll(ctx context.Context) ([]domain.LibraryRecord, error)

	// Get returns domain.ErrNotFound if no record has the id.
	Get(ctx context.Context, id string) (*domain.LibraryRecord, error)

	// Put inserts or replaces a record together with its notes.
	Put(ctx context.Context, record domain.LibraryRecord) error

	// PutAll writes every record in one transaction.
	// Either all records are written or none are.
	PutAll(ctx context.Context, records []domain.LibraryRecord) error

	// AppendNote adds a note to an existing record.
	AppendNote(ctx context.Context, recordID string, note domain.Note) error

	// Delete removes a record, its notes and its full text.
	// Returns domain.ErrNotFound if the record does not exist.
	Delete(ctx context.Context, id string) error

	// SaveFullText stores normalised text for a record.
	SaveFullText(ctx context.Context, text domain.FullText) error

	// DeleteFullText removes stored text for a record. Missing text is
	// not an error.
	DeleteFullText(ctx context.Context, id string) error

	// GetFullText returns domain.ErrNotFound if no text is stored.
	GetFullText(ctx context.Context, id string) (*domain.FullText, error)

	// ListFullTexts returns every stored full text.
	ListFullTexts(ctx context.Context) ([]domain.FullText, error)
}

// BlobStore persists attached files keyed by record id.
type BlobStore interface {
	// PutBlob stores or replaces the blob for id.
	PutBlob(ctx context.Context, id string, data []byte) error

	// GetBlob returns domain.ErrNotFound if no blob exists.
	GetBlob(ctx context.Context, id string) ([]byte, error)

	// DeleteBlob removes the blob for id. A missing blob is not an error.
	DeleteBlob(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}

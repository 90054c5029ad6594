package driving

import (
	"context"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

// LibraryService manages the local library of bookmarked works.
type LibraryService interface {
	// List returns every record, newest first.
	List(ctx context.Context) ([]domain.LibraryRecord, error)

	// Get returns a record by id.
	Get(ctx context.Context, id string) (*domain.LibraryRecord, error)

	// Filter returns records whose title, authors or tags contain substr.
	Filter(ctx context.Context, substr string) ([]domain.LibraryRecord, error)

	// Search runs a local full-text search and joins the ids with records.
	// Ids that no longer resolve are dropped.
	Search(ctx context.Context, query string, limit int) ([]domain.LibraryRecord, error)

	// SaveResult bookmarks a search result.
	SaveResult(ctx context.Context, result domain.SearchResult, tags []string) (*domain.LibraryRecord, error)

	// Add creates a manually entered record. Missing id and timestamps are filled in.
	Add(ctx context.Context, record domain.LibraryRecord) (*domain.LibraryRecord, error)

	// Update edits record metadata. Notes, AddedAt and HasLocalFile are preserved.
	Update(ctx context.Context, record domain.LibraryRecord) (*domain.LibraryRecord, error)

	// AddNote appends a note to a record.
	AddNote(ctx context.Context, id, content string, page *int) (*domain.Note, error)

	// AttachFile stores a file for a record. PDFs are also indexed.
	AttachFile(ctx context.Context, id string, data []byte) (*AttachResult, error)

	// GetFile returns the attached file for a record.
	GetFile(ctx context.Context, id string) ([]byte, error)

	// Delete removes a record, its file and its index entry.
	Delete(ctx context.Context, id string) error

	// Export serialises the whole library as a backup document.
	Export(ctx context.Context, compress bool) ([]byte, error)

	// Import validates and writes a backup. Nothing is written if any part is invalid.
	Import(ctx context.Context, data []byte) (int, error)
}

// AttachResult describes what AttachFile did.
type AttachResult struct {
	// IsPDF is true when the file carried a PDF header.
	IsPDF bool

	// Indexed is true when text was extracted and indexed.
	Indexed bool
}

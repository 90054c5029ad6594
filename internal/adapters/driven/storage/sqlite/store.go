package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/pardis/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
)

// DatabaseFile is the file name created inside the data directory.
const DatabaseFile = "library.db"

// Store is the SQLite database behind the library.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pardis/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pardis", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL mode lets readers proceed while a write transaction is open.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// LibraryStore returns a LibraryStore interface backed by this store.
func (s *Store) LibraryStore() driven.LibraryStore {
	return &libraryStore{store: s}
}

// migrate applies every migration newer than the recorded schema version.
func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var applied int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&applied); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	pending, err := migrations.Pending(applied)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if _, err := s.db.Exec(m.SQL); err != nil {
			return fmt.Errorf("executing migration %s: %w", m.Name, err)
		}
	}
	return nil
}

// ==================== Library Store ====================

// libraryStore implements driven.LibraryStore.
type libraryStore struct {
	store *Store
}

var _ driven.LibraryStore = (*libraryStore)(nil)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const recordColumns = `id, title, authors, year, abstract, source, url, thumbnail_url, tags,
	added_at, has_local_file, language, origin_system, doc_type, period, topic,
	citation_count, publisher, volume, issue`

// GetAll returns every record with its notes, newest first.
func (s *libraryStore) GetAll(ctx context.Context) ([]domain.LibraryRecord, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records ORDER BY added_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []domain.LibraryRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	notes, err := s.allNotes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Notes = notes[records[i].ID]
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AddedAt.After(records[j].AddedAt)
	})
	return records, nil
}

// Get retrieves a record and its notes by ID.
func (s *libraryStore) Get(ctx context.Context, id string) (*domain.LibraryRecord, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE id = ?", id)

	record, err := scanRecord(row)
	if err != nil {
		return nil, err
	}

	record.Notes, err = s.notesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Put inserts or replaces a record together with its notes.
func (s *libraryStore) Put(ctx context.Context, record domain.LibraryRecord) error {
	return s.PutAll(ctx, []domain.LibraryRecord{record})
}

// PutAll writes every record in one transaction.
func (s *libraryStore) PutAll(ctx context.Context, records []domain.LibraryRecord) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, record := range records {
		if err := putRecord(ctx, tx, record); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func putRecord(ctx context.Context, tx *sql.Tx, r domain.LibraryRecord) error {
	if r.ID == "" {
		return fmt.Errorf("saving record: empty id: %w", domain.ErrInvalidInput)
	}
	authors, err := marshalStrings(r.Authors)
	if err != nil {
		return fmt.Errorf("marshalling authors: %w", err)
	}
	tags, err := marshalStrings(r.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	var citations sql.NullInt64
	if r.CitationCount != nil {
		citations = sql.NullInt64{Int64: int64(*r.CitationCount), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			authors = excluded.authors,
			year = excluded.year,
			abstract = excluded.abstract,
			source = excluded.source,
			url = excluded.url,
			thumbnail_url = excluded.thumbnail_url,
			tags = excluded.tags,
			added_at = excluded.added_at,
			has_local_file = excluded.has_local_file,
			language = excluded.language,
			origin_system = excluded.origin_system,
			doc_type = excluded.doc_type,
			period = excluded.period,
			topic = excluded.topic,
			citation_count = excluded.citation_count,
			publisher = excluded.publisher,
			volume = excluded.volume,
			issue = excluded.issue
	`, r.ID, r.Title, authors, r.Year, r.Abstract, r.Source, r.URL, r.ThumbnailURL, tags,
		r.AddedAt.UTC(), r.HasLocalFile, string(r.Language), string(r.Origin), string(r.DocType),
		string(r.Period), string(r.Topic), citations, r.Publisher, r.Volume, r.Issue)
	if err != nil {
		return fmt.Errorf("saving record %s: %w", r.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE record_id = ?", r.ID); err != nil {
		return fmt.Errorf("clearing notes for %s: %w", r.ID, err)
	}
	for _, note := range r.Notes {
		if err := insertNote(ctx, tx, r.ID, note); err != nil {
			return err
		}
	}
	return nil
}

// AppendNote adds a note to an existing record.
func (s *libraryStore) AppendNote(ctx context.Context, recordID string, note domain.Note) error {
	var exists int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE id = ?", recordID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking record: %w", err)
	}
	if exists == 0 {
		return domain.ErrNotFound
	}
	return insertNote(ctx, s.store.db, recordID, note)
}

func insertNote(ctx context.Context, db execer, recordID string, note domain.Note) error {
	var page sql.NullInt64
	if note.Page != nil {
		page = sql.NullInt64{Int64: int64(*note.Page), Valid: true}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO notes (id, record_id, content, page, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.ID, recordID, note.Content, page, note.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	return nil
}

// Delete removes a record, its notes and its full text in one transaction.
func (s *libraryStore) Delete(ctx context.Context, id string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE record_id = ?", id); err != nil {
		return fmt.Errorf("deleting notes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM full_texts WHERE record_id = ?", id); err != nil {
		return fmt.Errorf("deleting full text: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveFullText stores or replaces normalised text for a record.
func (s *libraryStore) SaveFullText(ctx context.Context, text domain.FullText) error {
	if text.ID == "" {
		return fmt.Errorf("saving full text: empty id: %w", domain.ErrInvalidInput)
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO full_texts (record_id, content) VALUES (?, ?)
		ON CONFLICT(record_id) DO UPDATE SET content = excluded.content
	`, text.ID, text.Content)
	if err != nil {
		return fmt.Errorf("saving full text: %w", err)
	}
	return nil
}

// DeleteFullText drops stored text for a record.
func (s *libraryStore) DeleteFullText(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM full_texts WHERE record_id = ?", id); err != nil {
		return fmt.Errorf("deleting full text: %w", err)
	}
	return nil
}

// GetFullText retrieves stored text by record ID.
func (s *libraryStore) GetFullText(ctx context.Context, id string) (*domain.FullText, error) {
	ft := domain.FullText{ID: id}
	err := s.store.db.QueryRowContext(ctx,
		"SELECT content FROM full_texts WHERE record_id = ?", id).Scan(&ft.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("querying full text: %w", err)
	}
	return &ft, nil
}

// ListFullTexts returns every stored full text ordered by record ID.
func (s *libraryStore) ListFullTexts(ctx context.Context) ([]domain.FullText, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT record_id, content FROM full_texts ORDER BY record_id")
	if err != nil {
		return nil, fmt.Errorf("querying full texts: %w", err)
	}
	defer rows.Close()

	var texts []domain.FullText //nolint:prealloc // size unknown from query
	for rows.Next() {
		var ft domain.FullText
		if err := rows.Scan(&ft.ID, &ft.Content); err != nil {
			return nil, fmt.Errorf("scanning full text: %w", err)
		}
		texts = append(texts, ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating full texts: %w", err)
	}
	return texts, nil
}

func (s *libraryStore) notesFor(ctx context.Context, recordID string) ([]domain.Note, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT record_id, id, content, page, created_at
		FROM notes WHERE record_id = ? ORDER BY rowid
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	grouped, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}
	return grouped[recordID], nil
}

func (s *libraryStore) allNotes(ctx context.Context) (map[string][]domain.Note, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT record_id, id, content, page, created_at
		FROM notes ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

// ==================== Helper Functions ====================

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a single record row. Notes are loaded separately.
func scanRecord(row rowScanner) (*domain.LibraryRecord, error) {
	var r domain.LibraryRecord
	var authorsJSON, tagsJSON string
	var language, origin, docType, period, topic string
	var citations sql.NullInt64
	var addedAt time.Time

	if err := row.Scan(&r.ID, &r.Title, &authorsJSON, &r.Year, &r.Abstract, &r.Source,
		&r.URL, &r.ThumbnailURL, &tagsJSON, &addedAt, &r.HasLocalFile, &language, &origin,
		&docType, &period, &topic, &citations, &r.Publisher, &r.Volume, &r.Issue); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	if err := json.Unmarshal([]byte(authorsJSON), &r.Authors); err != nil {
		return nil, fmt.Errorf("unmarshaling authors: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
		return nil, fmt.Errorf("unmarshaling tags: %w", err)
	}

	r.AddedAt = addedAt.UTC()
	r.Language = domain.Language(language)
	r.Origin = domain.OriginSystem(origin)
	r.DocType = domain.DocType(docType)
	r.Period = domain.Period(period)
	r.Topic = domain.Topic(topic)
	if citations.Valid {
		n := int(citations.Int64)
		r.CitationCount = &n
	}
	return &r, nil
}

// scanNotes groups note rows by record ID, preserving row order.
func scanNotes(rows *sql.Rows) (map[string][]domain.Note, error) {
	grouped := make(map[string][]domain.Note)
	for rows.Next() {
		var recordID string
		var note domain.Note
		var page sql.NullInt64
		var createdAt time.Time
		if err := rows.Scan(&recordID, &note.ID, &note.Content, &page, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		note.CreatedAt = createdAt.UTC()
		if page.Valid {
			p := int(page.Int64)
			note.Page = &p
		}
		grouped[recordID] = append(grouped[recordID], note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return grouped, nil
}

// marshalStrings encodes a nil slice as an empty JSON array.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/core/ports/driving"
	"github.com/custodia-labs/pardis/internal/logger"
	"github.com/custodia-labs/pardis/internal/normalisers/pdf"
	"github.com/custodia-labs/pardis/internal/normalisers/persian"
	"github.com/custodia-labs/pardis/internal/query"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// LibraryService manages bookmarked works, their notes and files.
type LibraryService struct {
	store    driven.LibraryStore
	blobs    driven.BlobStore
	index    driving.IndexService
	validate *validator.Validate
	now      func() time.Time
}

// NewLibraryService creates a library service. index may be nil, in
// which case attached PDFs are stored but not indexed and local search
// is unavailable.
func NewLibraryService(
	store driven.LibraryStore,
	blobs driven.BlobStore,
	index driving.IndexService,
) *LibraryService {
	return &LibraryService{
		store:    store,
		blobs:    blobs,
		index:    index,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List returns every record, newest first.
func (s *LibraryService) List(ctx context.Context) ([]domain.LibraryRecord, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Get returns a record by id.
func (s *LibraryService) Get(ctx context.Context, id string) (*domain.LibraryRecord, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return record, nil
}

// Filter returns records whose title, authors or tags contain substr,
// ignoring case and Persian letter variants. An empty substr matches all.
func (s *LibraryService) Filter(ctx context.Context, substr string) ([]domain.LibraryRecord, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := foldForFilter(substr)
	if needle == "" {
		return records, nil
	}

	out := make([]domain.LibraryRecord, 0, len(records))
	for _, r := range records {
		if matchesFilter(r, needle) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Search joins local full-text hits with their records in rank order.
func (s *LibraryService) Search(ctx context.Context, q string, limit int) ([]domain.LibraryRecord, error) {
	if s.index == nil {
		return nil, domain.ErrSearchUnavailable
	}
	ids, err := s.index.SearchLocal(ctx, q, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.LibraryRecord, 0, len(ids))
	for _, id := range ids {
		r, err := s.store.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("library: indexed id %s has no record", id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get record %s: %w", id, err)
		}
		out = append(out, *r)
	}
	return out, nil
}

// SaveResult bookmarks a search result under its own id.
// Returns domain.ErrAlreadyExists if the result was saved before.
func (s *LibraryService) SaveResult(
	ctx context.Context, result domain.SearchResult, tags []string,
) (*domain.LibraryRecord, error) {
	if !result.Origin.IsValid() {
		return nil, fmt.Errorf("origin %q: %w", result.Origin, domain.ErrInvalidInput)
	}
	record := domain.LibraryRecord{
		ID:            result.ID,
		Title:         strings.TrimSpace(result.Title),
		Authors:       result.Authors,
		Year:          result.Year,
		Abstract:      result.Abstract,
		Source:        result.SourceLabel,
		URL:           result.URL,
		ThumbnailURL:  result.ThumbnailURL,
		Tags:          cleanTags(tags),
		Origin:        result.Origin,
		DocType:       result.Origin.DocType(),
		Language:      detectLanguage(result.Title),
		CitationCount: result.CitationCount,
	}
	return s.insert(ctx, record)
}

// Add creates a manually entered record. A missing id, timestamp,
// language, origin or type is filled in.
func (s *LibraryService) Add(ctx context.Context, record domain.LibraryRecord) (*domain.LibraryRecord, error) {
	record.Title = strings.TrimSpace(record.Title)
	record.Tags = cleanTags(record.Tags)
	if record.Origin == "" {
		record.Origin = domain.OriginManual
	}
	if record.DocType == "" {
		record.DocType = record.Origin.DocType()
	}
	if record.Language == "" {
		record.Language = detectLanguage(record.Title)
	}
	for i := range record.Notes {
		if record.Notes[i].ID == "" {
			record.Notes[i].ID = uuid.New().String()
		}
		if record.Notes[i].CreatedAt.IsZero() {
			record.Notes[i].CreatedAt = s.now()
		}
	}
	return s.insert(ctx, record)
}

func (s *LibraryService) insert(ctx context.Context, record domain.LibraryRecord) (*domain.LibraryRecord, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.AddedAt.IsZero() {
		record.AddedAt = s.now()
	}
	record.HasLocalFile = false

	if err := s.validateRecord(record); err != nil {
		return nil, err
	}

	if _, err := s.store.Get(ctx, record.ID); err == nil {
		return nil, fmt.Errorf("record %s: %w", record.ID, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check record %s: %w", record.ID, err)
	}

	if err := s.store.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("save record %s: %w", record.ID, err)
	}
	if err := s.blobs.DeleteBlob(ctx, record.ID); err != nil {
		logger.Warn("library: clear stranded file for %s: %v", record.ID, err)
	}
	logger.Debug("library: saved %s %q", record.ID, record.Title)
	return &record, nil
}

// Update replaces a record's metadata. Notes, AddedAt and HasLocalFile
// keep their stored values.
func (s *LibraryService) Update(ctx context.Context, record domain.LibraryRecord) (*domain.LibraryRecord, error) {
	existing, err := s.Get(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	record.Title = strings.TrimSpace(record.Title)
	record.Tags = cleanTags(record.Tags)
	record.Notes = existing.Notes
	record.AddedAt = existing.AddedAt
	record.HasLocalFile = existing.HasLocalFile
	if record.Origin == "" {
		record.Origin = existing.Origin
	}
	if record.DocType == "" {
		record.DocType = existing.DocType
	}
	if record.Language == "" {
		record.Language = existing.Language
	}

	if err := s.validateRecord(record); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("update record %s: %w", record.ID, err)
	}
	if s.index != nil && record.HasLocalFile {
		if err := s.index.Refresh(ctx, record.ID, record.Title, record.Authors); err != nil {
			return nil, err
		}
	}
	return &record, nil
}

// AddNote appends a note to a record.
func (s *LibraryService) AddNote(ctx context.Context, id, content string, page *int) (*domain.Note, error) {
	note := domain.Note{
		ID:        uuid.New().String(),
		Content:   strings.TrimSpace(content),
		CreatedAt: s.now(),
		Page:      page,
	}
	if err := s.validate.Struct(note); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := s.store.AppendNote(ctx, id, note); err != nil {
		return nil, fmt.Errorf("add note to %s: %w", id, err)
	}
	return &note, nil
}

// AttachFile stores data as the record's file, replacing any earlier
// one. PDFs are also extracted and indexed; a PDF without a text layer
// or a non-PDF file is kept but not indexed, and text from the earlier
// file is dropped.
func (s *LibraryService) AttachFile(ctx context.Context, id string, data []byte) (*driving.AttachResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("attach to %s: empty file: %w", id, domain.ErrInvalidInput)
	}
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.blobs.PutBlob(ctx, id, data); err != nil {
		return nil, fmt.Errorf("store file for %s: %w", id, err)
	}
	if !record.HasLocalFile {
		record.HasLocalFile = true
		if err := s.store.Put(ctx, *record); err != nil {
			return nil, fmt.Errorf("mark %s as having a file: %w", id, err)
		}
	}

	result := &driving.AttachResult{IsPDF: pdf.IsPDF(data)}
	if s.index == nil {
		return result, nil
	}
	if !result.IsPDF {
		return result, s.index.Forget(ctx, id)
	}

	indexed, err := s.index.IndexDocument(ctx, id, record.Title, record.Authors, data)
	if err != nil {
		return result, err
	}
	result.Indexed = indexed
	return result, nil
}

// GetFile returns the attached file for a record.
func (s *LibraryService) GetFile(ctx context.Context, id string) ([]byte, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.HasLocalFile {
		return nil, fmt.Errorf("file for %s: %w", id, domain.ErrNotFound)
	}
	data, err := s.blobs.GetBlob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("file for %s: %w", id, err)
	}
	return data, nil
}

// Delete removes the record with its notes and full text, then its
// file, then its index entry. Once the record is gone the delete has
// succeeded: a blob that cannot be removed is logged and left stranded,
// and is cleared when a record with the same id is next created.
func (s *LibraryService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	if err := s.blobs.DeleteBlob(ctx, id); err != nil {
		logger.Warn("library: delete file for %s: %v", id, err)
	}
	if s.index != nil {
		s.index.Remove(id)
	}
	return nil
}

// Export serialises the library, optionally zstd-compressed.
func (s *LibraryService) Export(ctx context.Context, compress bool) ([]byte, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(domain.Backup{
		Version:   domain.BackupVersion,
		Timestamp: s.now(),
		Library:   records,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	if !compress {
		return data, nil
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil), nil
}

// backupEnvelope keeps library raw so a missing or non-array value can
// be told apart from an empty one.
type backupEnvelope struct {
	Version int             `json:"version"`
	Library json.RawMessage `json:"library"`
}

// Import validates a backup and writes all of its records in one batch.
// Records with an existing id are replaced. Nothing is written when any
// part of the backup is invalid.
func (s *LibraryService) Import(ctx context.Context, data []byte) (int, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return 0, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer decoder.Close()
		if data, err = decoder.DecodeAll(data, nil); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
		}
	}

	var env backupEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if env.Version > domain.BackupVersion {
		return 0, fmt.Errorf("%w: unsupported version %d", domain.ErrInvalidBackup, env.Version)
	}
	raw := bytes.TrimSpace(env.Library)
	if len(raw) == 0 || raw[0] != '[' {
		return 0, fmt.Errorf("%w: library must be an array", domain.ErrInvalidBackup)
	}

	var records []domain.LibraryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if err := s.validateRecord(r); err != nil {
			return 0, fmt.Errorf("%w: record %d: %v", domain.ErrInvalidBackup, i, err)
		}
		if seen[r.ID] {
			return 0, fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidBackup, r.ID)
		}
		seen[r.ID] = true
	}

	for i := range records {
		if !records[i].HasLocalFile {
			continue
		}
		has, err := s.hasBlob(ctx, records[i].ID)
		if err != nil {
			return 0, err
		}
		if !has {
			logger.Warn("library: import %s: no file stored, clearing file flag", records[i].ID)
			records[i].HasLocalFile = false
		}
	}

	if err := s.store.PutAll(ctx, records); err != nil {
		return 0, fmt.Errorf("import records: %w", err)
	}
	if err := s.reconcileIndex(ctx, records); err != nil {
		return 0, err
	}
	logger.Info("Imported %d records", len(records))
	return len(records), nil
}

func (s *LibraryService) hasBlob(ctx context.Context, id string) (bool, error) {
	_, err := s.blobs.GetBlob(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("check file for %s: %w", id, err)
	}
}

// reconcileIndex brings stored text and the index in line with imported
// records: text goes for records without a file and is re-indexed under
// the imported metadata otherwise.
func (s *LibraryService) reconcileIndex(ctx context.Context, records []domain.LibraryRecord) error {
	if s.index == nil {
		return nil
	}
	for _, r := range records {
		var err error
		if r.HasLocalFile {
			err = s.index.Refresh(ctx, r.ID, r.Title, r.Authors)
		} else {
			err = s.index.Forget(ctx, r.ID)
		}
		if err != nil {
			return fmt.Errorf("import %s: %w", r.ID, err)
		}
	}
	return nil
}

func (s *LibraryService) validateRecord(r domain.LibraryRecord) error {
	if err := s.validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !r.Origin.IsValid() {
		return fmt.Errorf("%w: origin %q", domain.ErrInvalidInput, r.Origin)
	}
	if !r.Period.IsValid() || !r.Topic.IsValid() {
		return fmt.Errorf("%w: period %q topic %q", domain.ErrInvalidInput, r.Period, r.Topic)
	}
	return nil
}

func detectLanguage(text string) domain.Language {
	if query.HasPersian(text) {
		return domain.LanguagePersian
	}
	return domain.LanguageEnglish
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func foldForFilter(s string) string {
	return strings.ToLower(persian.Normalise(s))
}

func matchesFilter(r domain.LibraryRecord, needle string) bool {
	if strings.Contains(foldForFilter(r.Title), needle) {
		return true
	}
	for _, a := range r.Authors {
		if strings.Contains(foldForFilter(a), needle) {
			return true
		}
	}
	for _, t := range r.Tags {
		if strings.Contains(foldForFilter(t), needle) {
			return true
		}
	}
	return false
}

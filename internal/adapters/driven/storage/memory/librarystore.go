package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore is an in-memory implementation of driven.LibraryStore.
type LibraryStore struct {
	mu        sync.RWMutex
	records   map[string]domain.LibraryRecord
	fullTexts map[string]string
}

// NewLibraryStore creates a new in-memory library store.
func NewLibraryStore() *LibraryStore {
	return &LibraryStore{
		records:   make(map[string]domain.LibraryRecord),
		fullTexts: make(map[string]string),
	}
}

// GetAll returns every record, newest first.
func (s *LibraryStore) GetAll(_ context.Context) ([]domain.LibraryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.LibraryRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, cloneRecord(r))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out, nil
}

// Get retrieves a record by ID.
func (s *LibraryStore) Get(_ context.Context, id string) (*domain.LibraryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r = cloneRecord(r)
	return &r, nil
}

// Put inserts or replaces a record.
func (s *LibraryStore) Put(_ context.Context, record domain.LibraryRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = cloneRecord(record)
	return nil
}

// PutAll writes every record or none.
func (s *LibraryStore) PutAll(_ context.Context, records []domain.LibraryRecord) error {
	for _, r := range records {
		if r.ID == "" {
			return domain.ErrInvalidInput
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.ID] = cloneRecord(r)
	}
	return nil
}

// AppendNote adds a note to an existing record.
func (s *LibraryStore) AppendNote(_ context.Context, recordID string, note domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	r.Notes = append(cloneNotes(r.Notes), note)
	s.records[recordID] = r
	return nil
}

// Delete removes a record and its full text.
func (s *LibraryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	delete(s.fullTexts, id)
	return nil
}

// SaveFullText stores normalised text for a record.
func (s *LibraryStore) SaveFullText(_ context.Context, text domain.FullText) error {
	if text.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullTexts[text.ID] = text.Content
	return nil
}

// DeleteFullText drops stored text for id.
func (s *LibraryStore) DeleteFullText(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fullTexts, id)
	return nil
}

// GetFullText retrieves stored text by record ID.
func (s *LibraryStore) GetFullText(_ context.Context, id string) (*domain.FullText, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.fullTexts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.FullText{ID: id, Content: content}, nil
}

// ListFullTexts returns every stored full text ordered by ID.
func (s *LibraryStore) ListFullTexts(_ context.Context) ([]domain.FullText, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FullText, 0, len(s.fullTexts))
	for id, content := range s.fullTexts {
		out = append(out, domain.FullText{ID: id, Content: content})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneRecord(r domain.LibraryRecord) domain.LibraryRecord {
	r.Authors = append([]string(nil), r.Authors...)
	r.Tags = append([]string(nil), r.Tags...)
	r.Notes = cloneNotes(r.Notes)
	if r.CitationCount != nil {
		n := *r.CitationCount
		r.CitationCount = &n
	}
	return r
}

func cloneNotes(notes []domain.Note) []domain.Note {
	if notes == nil {
		return nil
	}
	out := make([]domain.Note, len(notes))
	for i, n := range notes {
		if n.Page != nil {
			p := *n.Page
			n.Page = &p
		}
		out[i] = n
	}
	return out
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/core/ports/driving"
	"github.com/custodia-labs/pardis/internal/logger"
	"github.com/custodia-labs/pardis/internal/normalisers/persian"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// SnippetRunes is the maximum length of a text window returned by Snippet.
const SnippetRunes = 2500

// IndexService keeps the full-text index in step with stored full texts.
type IndexService struct {
	store     driven.LibraryStore
	index     driven.FullTextIndex
	extractor driven.TextExtractor
	limit     int
}

// NewIndexService creates an index service.
// index and extractor may be nil; the service then degrades to storing
// nothing and answering searches with domain.ErrSearchUnavailable.
func NewIndexService(
	store driven.LibraryStore,
	index driven.FullTextIndex,
	extractor driven.TextExtractor,
	settings domain.IndexSettings,
) *IndexService {
	limit := settings.ResultLimit
	if limit <= 0 {
		limit = domain.DefaultLocalResultLimit
	}
	return &IndexService{
		store:     store,
		index:     index,
		extractor: extractor,
		limit:     limit,
	}
}

// IndexDocument extracts pdf, stores the text and indexes it with the
// record's title and authors. Extraction failures are logged and
// reported as false so callers can keep the file without its text;
// any text indexed for an earlier file is dropped.
func (s *IndexService) IndexDocument(
	ctx context.Context, id, title string, authors []string, pdf []byte,
) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("index document: empty id: %w", domain.ErrInvalidInput)
	}
	if s.index == nil || s.extractor == nil {
		logger.Warn("index: %s not indexed: %v", id, domain.ErrSearchUnavailable)
		return false, s.Forget(ctx, id)
	}

	text, err := s.extractor.Extract(ctx, pdf)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		if errors.Is(err, domain.ErrEmptyExtraction) {
			logger.Warn("index: %s has no text layer, skipping", id)
		} else {
			logger.Warn("index: %s extraction failed: %v", id, err)
		}
		return false, s.Forget(ctx, id)
	}

	if err := s.store.SaveFullText(ctx, domain.FullText{ID: id, Content: text}); err != nil {
		return false, fmt.Errorf("save full text: %w", err)
	}
	if err := s.index.Add(indexedDocument(id, title, authors, text)); err != nil {
		return false, fmt.Errorf("index %s: %w", id, err)
	}

	logger.Debug("index: %s indexed (%d runes)", id, len([]rune(text)))
	return true, nil
}

// SearchLocal returns ids of indexed records matching query, best first.
func (s *IndexService) SearchLocal(_ context.Context, query string, limit int) ([]string, error) {
	if s.index == nil {
		return nil, domain.ErrSearchUnavailable
	}
	if limit <= 0 {
		limit = s.limit
	}
	ids, err := s.index.Search(query, limit)
	if err != nil {
		return nil, fmt.Errorf("local search: %w", err)
	}
	return ids, nil
}

// Snippet returns up to SnippetRunes of stored text for id, centred on
// the first occurrence of query. Without a match the window starts at
// the beginning of the text.
func (s *IndexService) Snippet(ctx context.Context, id, query string) (string, error) {
	ft, err := s.store.GetFullText(ctx, id)
	if err != nil {
		return "", fmt.Errorf("snippet %s: %w", id, err)
	}
	return window(ft.Content, persian.Normalise(query), SnippetRunes), nil
}

// Rehydrate rebuilds the index from the store. Full texts whose record
// has gone are skipped.
func (s *IndexService) Rehydrate(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, domain.ErrSearchUnavailable
	}
	logger.Section("Rehydrating Index")

	records, err := s.store.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}
	texts, err := s.store.ListFullTexts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list full texts: %w", err)
	}

	byID := make(map[string]domain.LibraryRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	s.index.Reset()
	count := 0
	for _, ft := range texts {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		r, ok := byID[ft.ID]
		if !ok {
			logger.Warn("index: full text %s has no record, skipping", ft.ID)
			continue
		}
		if err := s.index.Add(indexedDocument(r.ID, r.Title, r.Authors, ft.Content)); err != nil {
			logger.Warn("index: %s: %v", r.ID, err)
			continue
		}
		count++
	}

	logger.Info("Indexed %d documents", count)
	return count, nil
}

// Forget drops the stored text for id and evicts it from the index.
func (s *IndexService) Forget(ctx context.Context, id string) error {
	s.Remove(id)
	if err := s.store.DeleteFullText(ctx, id); err != nil {
		return fmt.Errorf("forget %s: %w", id, err)
	}
	return nil
}

// Refresh re-indexes id's stored text under a new title and authors.
// Records without stored text are left alone.
func (s *IndexService) Refresh(ctx context.Context, id, title string, authors []string) error {
	if s.index == nil {
		return nil
	}
	ft, err := s.store.GetFullText(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("refresh %s: %w", id, err)
	}
	if err := s.index.Add(indexedDocument(id, title, authors, ft.Content)); err != nil {
		return fmt.Errorf("refresh %s: %w", id, err)
	}
	return nil
}

// Remove evicts id from the index.
func (s *IndexService) Remove(id string) {
	if s.index != nil {
		s.index.Remove(id)
	}
}

// Size returns the number of indexed documents.
func (s *IndexService) Size() int {
	if s.index == nil {
		return 0
	}
	return s.index.Len()
}

func indexedDocument(id, title string, authors []string, content string) domain.IndexedDocument {
	return domain.IndexedDocument{
		ID:                id,
		NormalizedTitle:   persian.Normalise(title),
		NormalizedAuthors: persian.Normalise(strings.Join(authors, " ")),
		NormalizedContent: content,
	}
}

// window cuts at most size runes out of text around the first match of
// needle, case-insensitively.
func window(text, needle string, size int) string {
	runes := []rune(text)
	if len(runes) <= size {
		return text
	}

	start := 0
	if at := indexFold(runes, []rune(needle)); at >= 0 {
		start = at - size/2
	}
	if start < 0 {
		start = 0
	}
	if start+size > len(runes) {
		start = len(runes) - size
	}
	return string(runes[start : start+size])
}

// indexFold returns the rune offset of the first case-insensitive match
// of needle in haystack, or -1. Runes are compared one to one, so the
// offset is valid in haystack.
func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != unicode.ToLower(r) {
				continue outer
			}
		}
		return i
	}
	return -1
}

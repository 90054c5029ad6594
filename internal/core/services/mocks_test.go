package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
)

// fakeAdapter is a scripted driven.SourceAdapter.
type fakeAdapter struct {
	name    string
	group   domain.ResultGroup
	origin  domain.OriginSystem
	results []domain.SearchResult
	err     error
	delay   time.Duration
	panics  bool

	mu   sync.Mutex
	seen []domain.Query
}

var _ driven.SourceAdapter = (*fakeAdapter)(nil)

func (f *fakeAdapter) Name() string                { return f.name }
func (f *fakeAdapter) Origin() domain.OriginSystem { return f.origin }
func (f *fakeAdapter) Group() domain.ResultGroup   { return f.group }

func (f *fakeAdapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	f.mu.Lock()
	f.seen = append(f.seen, q)
	f.mu.Unlock()

	if f.panics {
		panic("boom")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.results, f.err
}

func (f *fakeAdapter) queries() []domain.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Query(nil), f.seen...)
}

// fakeExtractor returns scripted text keyed by the PDF bytes.
type fakeExtractor struct {
	texts map[string]string
	err   error
	calls int
}

var _ driven.TextExtractor = (*fakeExtractor)(nil)

func (f *fakeExtractor) Extract(_ context.Context, data []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	text, ok := f.texts[string(data)]
	if !ok || text == "" {
		return "", domain.ErrEmptyExtraction
	}
	return text, nil
}

func result(title string, origin domain.OriginSystem) domain.SearchResult {
	return domain.SearchResult{
		ID:          string(origin) + ":" + title,
		Title:       title,
		Authors:     []string{},
		SourceLabel: string(origin),
		Origin:      origin,
	}
}

func intPtr(n int) *int {
	return &n
}

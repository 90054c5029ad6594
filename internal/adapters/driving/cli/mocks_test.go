package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driving"
)

// Ensure mockSearchService implements the interface.
var _ driving.FederatedSearchService = (*mockSearchService)(nil)

// mockSearchService returns canned federated results.
type mockSearchService struct {
	results *domain.FederatedResults
	err     error

	query   string
	filters domain.SearchFilters
}

func (m *mockSearchService) SearchAll(
	_ context.Context,
	query string,
	filters domain.SearchFilters,
) (*domain.FederatedResults, error) {
	m.query = query
	m.filters = filters
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockSearchService) Sources() []string {
	return []string{"sid", "met", "ganjoor"}
}

// stubExtractor treats everything after the PDF header as the text layer.
type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, data []byte) (string, error) {
	const header = "%PDF-1.4"
	if len(data) <= len(header) {
		return "", domain.ErrEmptyExtraction
	}
	return string(data[len(header):]), nil
}

func sampleResults() *domain.FederatedResults {
	cited := 42
	return &domain.FederatedResults{
		Papers: []domain.SearchResult{
			{
				ID:            "s2-1",
				Title:         "Water and the Persian Garden",
				Authors:       []string{"Ansari", "Taghvaee"},
				Year:          "2011",
				SourceLabel:   "Semantic Scholar",
				URL:           "https://example.org/water",
				Origin:        domain.OriginSemanticScholar,
				CitationCount: &cited,
			},
		},
		Art: []domain.SearchResult{
			{
				ID:          "met-1",
				Title:       "Garden Carpet",
				SourceLabel: "The Met",
				Origin:      domain.OriginMet,
			},
		},
		Literature: []domain.SearchResult{
			{
				ID:          "ganjoor-1",
				Title:       "غزل ۱",
				Authors:     []string{"حافظ"},
				SourceLabel: "Ganjoor",
				Origin:      domain.OriginGanjoor,
			},
		},
		Outcomes: []domain.SourceOutcome{
			{Source: "sid", Group: domain.GroupPapers, Err: errors.New("timeout")},
			{Source: "met", Group: domain.GroupArt, Count: 1},
		},
	}
}

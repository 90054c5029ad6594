package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/core/ports/driving"
	"github.com/custodia-labs/pardis/internal/logger"
)

// Ensure FederatedSearchService implements the interface.
var _ driving.FederatedSearchService = (*FederatedSearchService)(nil)

// FederatedSearchService fans queries out to the remote sources and
// fuses the answers into grouped, deduplicated results.
type FederatedSearchService struct {
	adapters      []driven.SourceAdapter
	fanOut        *FanOut
	gardenContext bool
}

// NewFederatedSearchService creates a federated search service over
// adapters, which must already be in fan-out order.
func NewFederatedSearchService(
	adapters []driven.SourceAdapter, settings domain.Settings,
) *FederatedSearchService {
	return &FederatedSearchService{
		adapters:      adapters,
		fanOut:        NewFanOut(settings.Sources.Timeout, settings.Sources.AggregateGrace),
		gardenContext: settings.Search.GardenContext,
	}
}

// SearchAll queries every adapter and groups the results. A configured
// garden context is applied even when filters does not ask for it.
func (s *FederatedSearchService) SearchAll(
	ctx context.Context, query string, filters domain.SearchFilters,
) (*domain.FederatedResults, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}
	if !filters.Period.IsValid() {
		return nil, fmt.Errorf("period %q: %w", filters.Period, domain.ErrInvalidInput)
	}
	if !filters.Topic.IsValid() {
		return nil, fmt.Errorf("topic %q: %w", filters.Topic, domain.ErrInvalidInput)
	}
	filters.GardenContext = filters.GardenContext || s.gardenContext

	q := domain.Query{Text: query, Filters: filters}
	perAdapter, outcomes := s.fanOut.Run(ctx, s.adapters, q)

	grouped := make(map[domain.ResultGroup][]domain.SearchResult, 3)
	for i, a := range s.adapters {
		grouped[a.Group()] = append(grouped[a.Group()], perAdapter[i]...)
	}

	out := &domain.FederatedResults{
		Papers:     Dedup(grouped[domain.GroupPapers]),
		Art:        Dedup(grouped[domain.GroupArt]),
		Literature: Dedup(grouped[domain.GroupLiterature]),
		Outcomes:   outcomes,
	}
	logger.Info("Found %d papers, %d artworks, %d literary works",
		len(out.Papers), len(out.Art), len(out.Literature))
	return out, nil
}

// Sources returns the adapter names in fan-out order.
func (s *FederatedSearchService) Sources() []string {
	names := make([]string, len(s.adapters))
	for i, a := range s.adapters {
		names[i] = a.Name()
	}
	return names
}

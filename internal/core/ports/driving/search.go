package driving

import (
	"context"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

// FederatedSearchService fans a query out to every enabled remote source.
type FederatedSearchService interface {
	// SearchAll queries all sources concurrently and returns deduplicated
	// results grouped into papers, art and literature. Individual source
	// failures yield empty contributions, never an error.
	// Returns domain.ErrInvalidInput for a blank query.
	SearchAll(ctx context.Context, query string, filters domain.SearchFilters) (*domain.FederatedResults, error)

	// Sources returns the names of the enabled adapters in fan-out order.
	Sources() []string
}

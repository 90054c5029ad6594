package driven

import (
	"context"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

// SourceAdapter queries one remote system and maps its response to SearchResults.
//
// Search returns an error for any network, status, payload or rate-limit
// failure. Converting that error to an empty list is the fan-out
// coordinator's job, so failures stay visible to logging.
type SourceAdapter interface {
	// Name is the stable adapter name used in config and logs.
	Name() string

	// Origin is the system results are attributed to.
	Origin() domain.OriginSystem

	// Group is the result bucket this adapter reports under.
	Group() domain.ResultGroup

	// Search shapes q for the remote system, calls it and maps the results.
	// Remote ordering is preserved.
	Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error)
}

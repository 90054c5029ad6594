package services

import (
	"strings"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/normalisers/persian"
)

// TitleKey is the identity used for deduplication: the title normalised,
// lower-cased and whitespace-collapsed.
func TitleKey(title string) string {
	return strings.ToLower(persian.Normalise(title))
}

// Dedup keeps the first result for each TitleKey, in input order.
// Fields the kept result lacks (abstract, url, thumbnail, year, authors,
// citation count) are filled from later duplicates.
func Dedup(results []domain.SearchResult) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(results))
	index := make(map[string]int, len(results))

	for _, r := range results {
		key := TitleKey(r.Title)
		if i, ok := index[key]; ok {
			backfill(&out[i], r)
			continue
		}
		index[key] = len(out)
		out = append(out, r)
	}
	return out
}

func backfill(dst *domain.SearchResult, src domain.SearchResult) {
	if dst.Abstract == "" {
		dst.Abstract = src.Abstract
	}
	if dst.URL == "" {
		dst.URL = src.URL
	}
	if dst.ThumbnailURL == "" {
		dst.ThumbnailURL = src.ThumbnailURL
	}
	if dst.Year == "" {
		dst.Year = src.Year
	}
	if len(dst.Authors) == 0 && len(src.Authors) > 0 {
		dst.Authors = append([]string(nil), src.Authors...)
	}
	if dst.CitationCount == nil && src.CitationCount != nil {
		n := *src.CitationCount
		dst.CitationCount = &n
	}
}

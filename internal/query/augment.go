package query

import (
	"strings"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

// ForPapers appends period, topic and garden vocabulary in both scripts.
// Each bibliographic adapter then sanitises the result for its backend.
func ForPapers(q domain.Query) string {
	parts := []string{q.Text}
	if t, ok := PeriodTerms(q.Filters.Period); ok {
		parts = append(parts, t.En, t.Fa)
	}
	if t, ok := TopicTerms(q.Filters.Topic); ok {
		parts = append(parts, t.En, t.Fa)
	}
	if q.Filters.GardenContext {
		parts = append(parts, GardenTerms.En, GardenTerms.Fa)
	}
	return collapse(strings.Join(parts, " "))
}

// ForArt translates Persian art vocabulary to English and appends the
// English period and, when forced, a landscape term.
func ForArt(q domain.Query) string {
	parts := []string{q.Text}
	if HasPersian(q.Text) {
		parts = append(parts, ToEnglishArtTerms(q.Text))
	}
	if t, ok := PeriodTerms(q.Filters.Period); ok {
		parts = append(parts, t.En)
	}
	if q.Filters.GardenContext {
		parts = append(parts, "Garden Landscape")
	}
	return collapse(strings.Join(parts, " "))
}

// ForLiterature nudges Persian queries toward garden imagery when the
// garden context is forced and the query mentions neither باغ nor گل.
func ForLiterature(q domain.Query) string {
	text := q.Text
	if q.Filters.GardenContext && HasPersian(text) &&
		!strings.Contains(text, "باغ") && !strings.Contains(text, "گل") {
		text += " باغ گل"
	}
	return collapse(text)
}

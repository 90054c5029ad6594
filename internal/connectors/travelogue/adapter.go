// Package travelogue searches an offline archive of public domain travel
// writing about Persia.
//
// A query naming a place, in any spelling the gazetteer knows, returns
// every passage set there. Otherwise passages whose text or book title
// contains a query word, or the English for a Persian query word, are
// returned. Corpus order is preserved.
package travelogue

import (
	"context"
	"strings"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/normalisers/persian"
	"github.com/custodia-labs/pardis/internal/query"
)

const (
	// Name is the adapter name used in config and logs.
	Name = "travelogue"

	label        = "Travelogue Archive"
	minTermRunes = 3
)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
}

// Adapter searches the travelogue corpus.
type Adapter struct {
	corpus []Passage
}

// New creates a travelogue adapter over corpus. A nil corpus uses Corpus.
func New(corpus []Passage) *Adapter {
	if corpus == nil {
		corpus = Corpus
	}
	return &Adapter{corpus: corpus}
}

// Verify interface compliance.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Name returns the adapter name.
func (a *Adapter) Name() string { return Name }

// Origin returns the origin system.
func (a *Adapter) Origin() domain.OriginSystem { return domain.OriginTravelogue }

// Group returns the result group.
func (a *Adapter) Group() domain.ResultGroup { return domain.GroupLiterature }

// Search matches passages by place, then by words.
func (a *Adapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := query.MixedClean(query.ForLiterature(q))
	tokens := persian.Tokenise(text)
	if len(tokens) == 0 {
		return nil, domain.ErrSkipped
	}

	place, byPlace := Resolve(text)
	terms := searchTerms(tokens)

	var results []domain.SearchResult
	for _, p := range a.corpus {
		if (byPlace && p.Location == place) || p.mentions(terms) {
			results = append(results, p.result())
		}
	}
	return results, nil
}

func searchTerms(tokens []string) []string {
	var terms []string
	for _, tok := range tokens {
		if query.RuneLen(tok) >= minTermRunes && !stopWords[tok] && !query.HasPersian(tok) {
			terms = append(terms, tok)
		}
	}
	return append(terms, translate(tokens)...)
}

func (p Passage) mentions(terms []string) bool {
	text := strings.ToLower(p.Text)
	title := strings.ToLower(p.BookTitle)
	for _, t := range terms {
		if strings.Contains(text, t) || strings.Contains(title, t) {
			return true
		}
	}
	return false
}

func (p Passage) result() domain.SearchResult {
	return domain.SearchResult{
		ID:          p.ID,
		Title:       p.BookTitle,
		Authors:     []string{p.Author},
		Year:        p.Year,
		SourceLabel: label + " (" + p.Location + ")",
		Abstract:    p.Excerpt,
		URL:         p.SourceURL,
		Origin:      domain.OriginTravelogue,
	}
}

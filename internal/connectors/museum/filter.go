// Package museum holds the artwork quality filter shared by the museum
// adapters. Collections answer broad queries with potsherds, coins and
// fragments; the filter keeps visual-art objects and anything whose
// title names what the user asked for.
package museum

import (
	"sort"
	"strings"
	"unicode"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/query"
)

// Categories is the allow-list of visual-art media and object types.
var Categories = []string{
	"painting", "ink", "carpet", "rug", "ceramic", "tile", "miniature",
	"folio", "manuscript", "textile", "watercolor", "gouache",
	"calligraphy", "illuminated", "lacquer", "album", "drawing", "silk",
	"velvet",
}

// Junk marks objects that are rarely what a garden researcher wants.
var Junk = []string{"fragment", "sherd", "shard", "coin"}

// minTermRunes drops short words such as "of" from title matching.
const minTermRunes = 3

// Candidate is a mapped result plus the medium the filter inspects.
type Candidate struct {
	Result domain.SearchResult
	Medium string
}

// Terms returns the lower-cased words a title may match for q: the
// Latin words of the user's text and the English art terms its Persian
// words translate to. The generic fallback term is never included.
func Terms(q domain.Query) []string {
	raw := query.LatinOnly(q.Text) + " " + strings.Join(query.TranslatedArtTerms(q.Text), " ")
	seen := make(map[string]bool)
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(raw)) {
		if query.RuneLen(w) < minTermRunes || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}
	return terms
}

// Filter keeps candidates that match a category or whose title contains
// a term, drops junk unless the title matches, and moves title matches
// ahead of category-only matches. Order is otherwise preserved.
func Filter(terms []string, items []Candidate) []domain.SearchResult {
	type kept struct {
		result  domain.SearchResult
		titleOK bool
	}

	var out []kept
	for _, it := range items {
		title := words(it.Result.Title)
		text := append(words(it.Medium), title...)

		titleOK := matchesAny(title, terms)
		if matchesAny(text, Junk) && !titleOK {
			continue
		}
		if !titleOK && !matchesAny(text, Categories) {
			continue
		}
		out = append(out, kept{result: it.Result, titleOK: titleOK})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].titleOK && !out[j].titleOK
	})

	results := make([]domain.SearchResult, len(out))
	for i, k := range out {
		results[i] = k.result
	}
	return results
}

// words splits s into lower-cased letter and digit runs.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// matchesAny reports whether a word starts with one of terms, so
// "gardens" matches "garden" but "pink" does not match "ink".
func matchesAny(ws, terms []string) bool {
	for _, w := range ws {
		for _, t := range terms {
			if strings.HasPrefix(w, t) {
				return true
			}
		}
	}
	return false
}

// Shape returns the English catalogue query for q with the collection
// bias term appended.
func Shape(q domain.Query) string {
	text := query.Prefer(query.LatinOnly, query.ForArt(q), minTermRunes)
	if text == "" {
		return ""
	}
	return text + " Persian"
}

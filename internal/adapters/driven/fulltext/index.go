package fulltext

import (
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/normalisers/persian"
)

// Ensure Index implements the interface.
var _ driven.FullTextIndex = (*Index)(nil)

// DefaultLimit is used when Search is called with limit <= 0.
const DefaultLimit = 20

type field int

const (
	fieldTitle field = iota
	fieldAuthors
	fieldContent
	numFields
)

var fieldBoost = [numFields]float64{3, 2, 1}

// Match weights by kind.
const (
	weightExact     = 1.0
	weightPrefix    = 0.6
	weightSubstring = 0.3
	adjacencyBonus  = 0.5
)

// posting counts occurrences of a term per field in one document.
type posting [numFields]int

type entry struct {
	tokens [numFields][]string
}

// Index is a thread-safe inverted index.
type Index struct {
	mu       sync.RWMutex
	docs     map[string]*entry
	postings map[string]map[string]*posting
}

// New creates an empty index.
func New() *Index {
	return &Index{
		docs:     make(map[string]*entry),
		postings: make(map[string]map[string]*posting),
	}
}

// Add inserts or replaces a document.
func (idx *Index) Add(doc domain.IndexedDocument) error {
	if strings.TrimSpace(doc.ID) == "" {
		return domain.ErrInvalidInput
	}

	e := &entry{}
	e.tokens[fieldTitle] = persian.Tokenise(doc.NormalizedTitle)
	e.tokens[fieldAuthors] = persian.Tokenise(doc.NormalizedAuthors)
	e.tokens[fieldContent] = persian.Tokenise(doc.NormalizedContent)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.removeLocked(doc.ID)
	idx.docs[doc.ID] = e
	for f := field(0); f < numFields; f++ {
		for _, tok := range e.tokens[f] {
			byDoc, ok := idx.postings[tok]
			if !ok {
				byDoc = make(map[string]*posting)
				idx.postings[tok] = byDoc
			}
			p, ok := byDoc[doc.ID]
			if !ok {
				p = &posting{}
				byDoc[doc.ID] = p
			}
			p[f]++
		}
	}
	return nil
}

// Remove drops a document. Unknown ids are ignored.
func (idx *Index) Remove(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(id)
}

func (idx *Index) removeLocked(id string) {
	e, ok := idx.docs[id]
	if !ok {
		return
	}
	for f := field(0); f < numFields; f++ {
		for _, tok := range e.tokens[f] {
			byDoc, ok := idx.postings[tok]
			if !ok {
				continue
			}
			delete(byDoc, id)
			if len(byDoc) == 0 {
				delete(idx.postings, tok)
			}
		}
	}
	delete(idx.docs, id)
}

// Has reports whether id is indexed.
func (idx *Index) Has(id string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.docs[id]
	return ok
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Reset drops every document.
func (idx *Index) Reset() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.docs = make(map[string]*entry)
	idx.postings = make(map[string]map[string]*posting)
}

// Search returns up to limit document ids ordered by score.
func (idx *Index) Search(query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	terms := uniqueTokens(persian.Tokenise(query))
	if len(terms) == 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	// best[i][id] is the best weighted match of query term i in document id.
	best := make([]map[string]float64, len(terms))
	for i, term := range terms {
		best[i] = idx.matchTerm(term)
	}

	hits := idx.score(terms, best, true)
	if len(hits) == 0 && len(terms) > 1 {
		hits = idx.score(terms, best, false)
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].score != hits[b].score {
			return hits[a].score > hits[b].score
		}
		return hits[a].id < hits[b].id
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids, nil
}

type hit struct {
	id    string
	score float64
}

// matchTerm scans the vocabulary for exact, prefix and substring matches
// of term and returns the best boosted weight per document.
func (idx *Index) matchTerm(term string) map[string]float64 {
	out := make(map[string]float64)
	for tok, byDoc := range idx.postings {
		var w float64
		switch {
		case tok == term:
			w = weightExact
		case strings.HasPrefix(tok, term):
			w = weightPrefix
		case strings.Contains(tok, term):
			w = weightSubstring
		default:
			continue
		}
		for id, p := range byDoc {
			for f := field(0); f < numFields; f++ {
				if p[f] == 0 {
					continue
				}
				if s := w * fieldBoost[f]; s > out[id] {
					out[id] = s
				}
			}
		}
	}
	return out
}

// score combines per-term matches. With requireAll set, a document must
// match every term; otherwise any match counts.
func (idx *Index) score(terms []string, best []map[string]float64, requireAll bool) []hit {
	candidates := make(map[string]float64)
	for id := range best[0] {
		candidates[id] = 0
	}
	if !requireAll {
		for _, m := range best[1:] {
			for id := range m {
				candidates[id] = 0
			}
		}
	}

	hits := make([]hit, 0, len(candidates))
	for id := range candidates {
		var total float64
		matched := 0
		for i := range terms {
			if s, ok := best[i][id]; ok {
				total += s
				matched++
			}
		}
		if requireAll && matched < len(terms) {
			continue
		}
		if len(terms) > 1 {
			total += adjacencyBonus * float64(idx.adjacentPairs(id, terms))
		}
		hits = append(hits, hit{id: id, score: total})
	}
	return hits
}

// adjacentPairs counts consecutive query term pairs that appear next to
// each other, by prefix, in any field of the document.
func (idx *Index) adjacentPairs(id string, terms []string) int {
	e, ok := idx.docs[id]
	if !ok {
		return 0
	}
	count := 0
	for i := 0; i+1 < len(terms); i++ {
	fields:
		for f := field(0); f < numFields; f++ {
			toks := e.tokens[f]
			for j := 0; j+1 < len(toks); j++ {
				if strings.HasPrefix(toks[j], terms[i]) && strings.HasPrefix(toks[j+1], terms[i+1]) {
					count++
					break fields
				}
			}
		}
	}
	return count
}

func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

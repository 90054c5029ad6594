package museum

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

func cand(title, medium string) Candidate {
	return Candidate{Result: domain.SearchResult{ID: title, Title: title}, Medium: medium}
}

func titles(rs []domain.SearchResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}

func TestFilter(t *testing.T) {
	items := []Candidate{
		cand("Bowl", "Stonepaste; ceramic glaze"),
		cand("Sherd", "Earthenware"),
		cand("Garden Carpet", "Wool"),
		cand("Coin of Shah Abbas", "Silver"),
		cand("Unknown object", "Bronze"),
		cand("Tile fragment", "Fritware"),
		cand("Garden fragment", "Wool"),
		cand("Folio from a Shahnama", "Ink and gold on paper"),
	}

	got := Filter([]string{"garden"}, items)

	assert.Equal(t, []string{
		"Garden Carpet",
		"Garden fragment",
		"Bowl",
		"Folio from a Shahnama",
	}, titles(got))
}

func TestFilter_NoTerms(t *testing.T) {
	got := Filter(nil, []Candidate{
		cand("Rug", ""),
		cand("Shard", "Ceramic"),
	})
	assert.Equal(t, []string{"Rug"}, titles(got))
}

func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, Filter([]string{"garden"}, nil))
}

func TestTerms(t *testing.T) {
	q := domain.Query{Text: "Fin garden of the Safavid era"}
	assert.Equal(t, []string{"fin", "garden", "the", "safavid", "era"}, Terms(q))

	// "baagh" in Persian script translates to Garden.
	q = domain.Query{Text: "باغ"}
	assert.Equal(t, []string{"garden"}, Terms(q))
}

func TestShape(t *testing.T) {
	tests := []struct {
		name string
		q    domain.Query
		want string
	}{
		{"english", domain.Query{Text: "garden"}, "garden Persian"},
		{"persian translated", domain.Query{Text: "فرش"}, "Carpet Persian"},
		{
			"period and garden context",
			domain.Query{Text: "tile", Filters: domain.SearchFilters{Period: domain.PeriodTimurid, GardenContext: true}},
			"tile Timurid Garden Landscape Persian",
		},
		{"empty", domain.Query{Text: `() ""`}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Shape(tt.q))
		})
	}
}

func TestTerms_UntranslatedPersianAddsNoFallback(t *testing.T) {
	assert.Empty(t, Terms(domain.Query{Text: "قنات"}))
}

func TestFilter_MatchesWholeWordsOnly(t *testing.T) {
	items := []Candidate{
		cand("Coin of a Persian Shah", "Silver"),
		cand("Sherd, part of a bowl", "Earthenware"),
		cand("Pink vase", "Glass"),
		cand("Pen box", "Ink on lacquer"),
		cand("Gardens of Paradise", "Opaque watercolor"),
	}

	got := Filter(Terms(domain.Query{Text: "قنات"}), items)
	assert.Equal(t, []string{"Pen box", "Gardens of Paradise"}, titles(got))

	got = Filter([]string{"art", "garden"}, items)
	assert.Equal(t, []string{"Gardens of Paradise", "Pen box"}, titles(got))
}

package travelogue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

func ids(rs []domain.SearchResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestResolve(t *testing.T) {
	tests := []struct {
		text  string
		place string
		ok    bool
	}{
		{"Ispahan in 1670", "Isfahan", true},
		{"شیراز", "Shiraz", true},
		// Arabic Yeh spelling of Shiraz still resolves.
		{"شيراز", "Shiraz", true},
		{"Bagh-e Fin", "Kashan", true},
		{"travels of Sa'di", "Shiraz", true},
		{"prayer rugs", "", false},
		{"آبیاری", "", false},
		{"garden", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			place, ok := Resolve(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.place, place)
		})
	}
}

func TestAdapter_SearchByPlace(t *testing.T) {
	a := New(nil)

	results, err := a.Search(context.Background(), domain.Query{Text: "Yezd"})
	require.NoError(t, err)
	assert.Equal(t, []string{"byron-oxiana-yazd"}, ids(results))

	r := results[0]
	assert.Equal(t, "The Road to Oxiana", r.Title)
	assert.Equal(t, []string{"Robert Byron"}, r.Authors)
	assert.Equal(t, "1937", r.Year)
	assert.Equal(t, "Travelogue Archive (Yazd)", r.SourceLabel)
	assert.Equal(t, domain.OriginTravelogue, r.Origin)
}

func TestAdapter_SearchByWord(t *testing.T) {
	a := New(nil)

	results, err := a.Search(context.Background(), domain.Query{Text: "cypress"})
	require.NoError(t, err)
	assert.Equal(t, []string{"browne-shiraz-1", "sackville-kashan"}, ids(results))
}

func TestAdapter_TranslatesPersianKeywords(t *testing.T) {
	a := New(nil)

	// "sarv" (cypress) in Persian script.
	results, err := a.Search(context.Background(), domain.Query{Text: "سرو"})
	require.NoError(t, err)
	assert.Equal(t, []string{"browne-shiraz-1", "sackville-kashan"}, ids(results))
}

func TestAdapter_PlaceAndWordCombine(t *testing.T) {
	a := New(nil)

	results, err := a.Search(context.Background(), domain.Query{Text: "Tabriz mirrors"})
	require.NoError(t, err)
	assert.Equal(t, []string{"curzon-tehran-1", "polo-tabriz"}, ids(results))
}

func TestAdapter_NoMatch(t *testing.T) {
	a := New(nil)

	results, err := a.Search(context.Background(), domain.Query{Text: "zeppelin"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdapter_EmptyQuery(t *testing.T) {
	_, err := New(nil).Search(context.Background(), domain.Query{Text: " OR "})
	assert.ErrorIs(t, err, domain.ErrSkipped)
}

func TestAdapter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil).Search(ctx, domain.Query{Text: "Yazd"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdapter_CustomCorpus(t *testing.T) {
	a := New([]Passage{{ID: "x", BookTitle: "Gardens of Fars", Location: "Shiraz", Text: "A qanat feeds the pool."}})

	results, err := a.Search(context.Background(), domain.Query{Text: "qanat"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids(results))
}

package crossref

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
)

func newAdapter(t *testing.T, h http.HandlerFunc, opts ...Option) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(web.NewClient(web.Config{Rate: -1}), append([]Option{WithBaseURL(srv.URL)}, opts...)...)
}

func TestAdapter_Search(t *testing.T) {
	longAbstract := "<jats:title>Abstract</jats:title><jats:p>" + strings.Repeat("water ", 200) + "</jats:p>"
	body := `{"status":"ok","message":{"items":[
	  {"DOI":"10.1/abc","title":["Chahar Bagh &amp; Paradise"],
	   "author":[{"given":"Donald","family":"Wilber"},{"name":"ICOMOS"}],
	   "created":{"date-parts":[[1962,1,1]]},
	   "container-title":["Iranian Studies"],"publisher":"T&F",
	   "abstract":` + quote(longAbstract) + `,
	   "URL":"https://doi.org/10.1/abc","is-referenced-by-count":41},
	  {"title":[],"publisher":"Brill"},
	  {"DOI":"10.1/x","title":["Gardens"]}
	]}}`

	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "garden Safavid", r.URL.Query().Get("query.bibliographic"))
		assert.Equal(t, "10", r.URL.Query().Get("rows"))
		assert.Equal(t, "relevance", r.URL.Query().Get("sort"))
		assert.Equal(t, "me@example.org", r.URL.Query().Get("mailto"))
		_, _ = w.Write([]byte(body))
	}, WithMailto("me@example.org"))

	q := domain.Query{Text: "garden", Filters: domain.SearchFilters{Period: domain.PeriodSafavid}}
	results, err := a.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, results, 3)

	r := results[0]
	assert.Equal(t, "10.1/abc", r.ID)
	assert.Equal(t, "Chahar Bagh & Paradise", r.Title)
	assert.Equal(t, []string{"Donald Wilber", "ICOMOS"}, r.Authors)
	assert.Equal(t, "1962", r.Year)
	assert.Equal(t, "Iranian Studies", r.SourceLabel)
	assert.Equal(t, domain.OriginCrossRef, r.Origin)
	require.NotNil(t, r.CitationCount)
	assert.Equal(t, 41, *r.CitationCount)
	assert.True(t, strings.HasPrefix(r.Abstract, "water water"))
	assert.True(t, strings.HasSuffix(r.Abstract, "..."))
	assert.LessOrEqual(t, utf8.RuneCountInString(r.Abstract), MaxAbstractRunes+3)
	assert.NotContains(t, r.Abstract, "Abstract")

	assert.Equal(t, "Untitled", results[1].Title)
	assert.Equal(t, "Brill", results[1].SourceLabel)
	assert.NotEmpty(t, results[1].ID)
	assert.Empty(t, results[1].Year)

	assert.Equal(t, "CrossRef", results[2].SourceLabel)
	assert.Nil(t, results[2].CitationCount)
}

func TestAdapter_MissingMessage(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdapter_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	a := New(web.NewClient(web.Config{Rate: -1}), WithBaseURL(srv.URL))
	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	assert.Error(t, err)
	assert.Nil(t, results)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

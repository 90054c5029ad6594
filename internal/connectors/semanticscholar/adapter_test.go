package semanticscholar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
)

const payload = `{
  "total": 2,
  "data": [
    {
      "paperId": "abc123",
      "title": "The Persian Garden: Bagh-e Fin",
      "authors": [{"name": "Mahvash Alemi"}, {"name": ""}],
      "year": 1997,
      "abstract": "A study of the Fin garden.",
      "venue": "Muqarnas",
      "url": "https://www.semanticscholar.org/paper/abc123",
      "openAccessPdf": {"url": "https://example.org/fin.pdf"},
      "citationCount": 12
    },
    {
      "paperId": "",
      "title": "Qanats of Yazd",
      "authors": [],
      "year": null,
      "abstract": null,
      "venue": "",
      "url": "https://www.semanticscholar.org/paper/q"
    },
    {"paperId": "empty", "title": ""}
  ]
}`

func newAdapter(t *testing.T, h http.HandlerFunc, opts ...Option) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := web.NewClient(web.Config{Rate: -1})
	return New(client, append([]Option{WithBaseURL(srv.URL)}, opts...)...)
}

func TestAdapter_Search(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fin garden Persian Garden", r.URL.Query().Get("query"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		_, _ = w.Write([]byte(payload))
	}, WithAPIKey("secret"))

	q := domain.Query{Text: "fin garden", Filters: domain.SearchFilters{GardenContext: true}}
	results, err := a.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "abc123", first.ID)
	assert.Equal(t, []string{"Mahvash Alemi"}, first.Authors)
	assert.Equal(t, "1997", first.Year)
	assert.Equal(t, "Muqarnas", first.SourceLabel)
	assert.Equal(t, "https://example.org/fin.pdf", first.URL)
	assert.Equal(t, domain.OriginSemanticScholar, first.Origin)
	require.NotNil(t, first.CitationCount)
	assert.Equal(t, 12, *first.CitationCount)

	second := results[1]
	assert.NotEmpty(t, second.ID)
	assert.Empty(t, second.Year)
	assert.Empty(t, second.Abstract)
	assert.Equal(t, "Semantic Scholar", second.SourceLabel)
	assert.Nil(t, second.CitationCount)
}

func TestAdapter_FallsBackToMixedQuery(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "باغ", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	results, err := a.Search(context.Background(), domain.Query{Text: "باغ"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdapter_Errors(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
		want error
	}{
		{
			name: "rate limit body",
			h: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("Too Many Requests"))
			},
			want: domain.ErrRateLimited,
		},
		{
			name: "malformed",
			h: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("{"))
			},
			want: domain.ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAdapter(t, tt.h)
			results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, results)
		})
	}
}

func TestAdapter_ServerError(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	var apiErr *web.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestAdapter_SkipsEmptyQuery(t *testing.T) {
	a := newAdapter(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := a.Search(context.Background(), domain.Query{Text: " AND () "})
	assert.ErrorIs(t, err, domain.ErrSkipped)
}

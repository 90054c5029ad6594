package ganjoor

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

const sitePage = `<html><body>
<aside class="random-poem"><a href="/hafez/ghazal/sh99">random</a></aside>
<div class="search-result">
  <a href="/hafez/ghazal/sh1">غزل شماره ۱</a>
  <p class="excerpt">الا یا ایها الساقی</p>
</div>
<div class="post-summary"><span>no link</span></div>
<div class="archive-item"><a href="https://ganjoor.net/saadi/golestan/sh2"></a></div>
</body></html>`

type fakeGanjoor struct {
	api  http.HandlerFunc
	site http.HandlerFunc
}

func newAdapter(t *testing.T, f fakeGanjoor) *Adapter {
	t.Helper()
	mux := http.NewServeMux()
	if f.api != nil {
		mux.HandleFunc("/api/", f.api)
	}
	if f.site != nil {
		mux.HandleFunc("/", f.site)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(web.NewClient(web.Config{Rate: -1}),
		WithAPIURL(srv.URL+"/api/search"),
		WithSiteURL(srv.URL))
}

func TestAdapter_API(t *testing.T) {
	a := newAdapter(t, fakeGanjoor{
		api: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "باغ", r.URL.Query().Get("term"))
			assert.Equal(t, "12", r.URL.Query().Get("pageSize"))
			_, _ = w.Write([]byte(`[
			  {"id": 2001, "title": "غزل ۱", "poetName": "حافظ", "plainText": "الا یا ایها الساقی", "url": "/hafez/ghazal/sh1"},
			  {"title": "", "plainText": "", "fullUrl": "https://ganjoor.net/x"}
			]`))
		},
		site: func(http.ResponseWriter, *http.Request) {
			t.Error("site should not be scraped when the API answers")
		},
	})

	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "ganjoor-2001", results[0].ID)
	assert.Equal(t, "حافظ - غزل ۱", results[0].Title)
	assert.Equal(t, []string{"حافظ"}, results[0].Authors)
	assert.Equal(t, "Ganjoor (API)", results[0].SourceLabel)
	assert.Equal(t, a.siteURL+"/hafez/ghazal/sh1", results[0].URL)
	assert.Equal(t, domain.OriginGanjoor, results[0].Origin)

	assert.Equal(t, "Untitled", results[1].Title)
	assert.Equal(t, []string{"Ganjoor"}, results[1].Authors)
	assert.Equal(t, "https://ganjoor.net/x", results[1].URL)
}

func TestAdapter_APIEnvelope(t *testing.T) {
	a := newAdapter(t, fakeGanjoor{
		api: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"poems": [{"id": 7, "title": "t", "poetName": "p", "url": "/p/t"}]}`))
		},
	})

	results, err := a.Search(context.Background(), domain.Query{Text: "باغ"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p - t", results[0].Title)
}

func TestAdapter_FallsBackToSite(t *testing.T) {
	tests := []struct {
		name string
		api  http.HandlerFunc
	}{
		{"api error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"api empty", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`[]`)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAdapter(t, fakeGanjoor{
				api: tt.api,
				site: func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "باغ", r.URL.Query().Get("s"))
					_, _ = w.Write([]byte(sitePage))
				},
			})

			results, err := a.Search(context.Background(), domain.Query{Text: "باغ"})
			require.NoError(t, err)
			require.Len(t, results, 2)

			assert.Equal(t, "غزل شماره ۱", results[0].Title)
			assert.Equal(t, a.siteURL+"/hafez/ghazal/sh1", results[0].URL)
			assert.Equal(t, "الا یا ایها الساقی", results[0].Abstract)
			assert.Equal(t, "Ganjoor (Web)", results[0].SourceLabel)

			assert.Equal(t, "Untitled Poem", results[1].Title)
			assert.Equal(t, "https://ganjoor.net/saadi/golestan/sh2", results[1].URL)
		})
	}
}

func TestAdapter_SiteWithoutResultBlocks(t *testing.T) {
	a := newAdapter(t, fakeGanjoor{
		api: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`[]`)) },
		site: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body><a href="/hafez">Hafez</a><a href="/saadi">Saadi</a></body></html>`))
		},
	})

	results, err := a.Search(context.Background(), domain.Query{Text: "باغ"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdapter_BothFail(t *testing.T) {
	a := newAdapter(t, fakeGanjoor{
		api:  func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) },
		site: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
	})

	results, err := a.Search(context.Background(), domain.Query{Text: "باغ"})
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestShape(t *testing.T) {
	tests := []struct {
		name string
		q    domain.Query
		want string
	}{
		{"english translated", domain.Query{Text: "Rose AND Nightingale"}, "گل سرخ بلبل"},
		{"persian kept", domain.Query{Text: "عشق"}, "عشق"},
		{
			"garden context added",
			domain.Query{Text: "عشق", Filters: domain.SearchFilters{GardenContext: true}},
			"عشق باغ گل",
		},
		{"booleans only", domain.Query{Text: "OR"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Shape(tt.q))
		})
	}
}

func TestAdapter_SkipsShortQuery(t *testing.T) {
	a := newAdapter(t, fakeGanjoor{})
	_, err := a.Search(context.Background(), domain.Query{Text: "x"})
	assert.ErrorIs(t, err, domain.ErrSkipped)
}

package chicago

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

const payload = `{"pagination":{"total":3},"data":[
  {"id":11,"title":"Fragment of a Garden Carpet","image_id":"abc-1","artist_display":"Iran","date_display":"1600–1650","medium_display":"Wool, cotton","place_of_origin":"Kerman"},
  {"id":12,"title":"Potsherd","image_id":"abc-2","medium_display":"Earthenware, sherd"},
  {"id":13,"title":"Illuminated Frontispiece","image_id":null,"medium_display":"Ink on paper"},
  {"id":14,"title":"Lovers in a Landscape","image_id":"abc-4","medium_display":"Opaque watercolor on paper"}
]}`

func TestAdapter_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "garden Persian", r.URL.Query().Get("q"))
		assert.Equal(t, "true", r.URL.Query().Get("query[term][is_public_domain]"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := New(web.NewClient(web.Config{Rate: -1}), WithBaseURL(srv.URL), WithIIIFURL("https://iiif.test/"))
	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	r := results[0]
	assert.Equal(t, "chicago-11", r.ID)
	assert.Equal(t, "https://iiif.test/abc-1/full/400,/0/default.jpg", r.ThumbnailURL)
	assert.Equal(t, "https://www.artic.edu/artworks/11", r.URL)
	assert.Equal(t, []string{"Iran"}, r.Authors)
	assert.Equal(t, "Wool, cotton; Kerman", r.Abstract)
	assert.Equal(t, "Art Institute of Chicago", r.SourceLabel)
	assert.Equal(t, domain.OriginChicago, r.Origin)

	assert.Equal(t, "chicago-14", results[1].ID)
}

func TestAdapter_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := New(web.NewClient(web.Config{Rate: -1}), WithBaseURL(srv.URL))
	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	assert.True(t, web.IsRateLimited(err))
	assert.Nil(t, results)
}

package cleveland

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

const payload = `{"info":{"total":4},"data":[
  {"id":1,"title":"Coin","technique":"silver","images":{"web":{"url":"https://img/1.jpg"}}},
  {"id":2,"title":"Princes in a Garden","creation_date":"c. 1540","creators":[{"description":"Aqa Mirak (Iranian)"}],
   "culture":["Iran, Safavid period"],"technique":"opaque watercolor and gold on paper","department":"Islamic Art",
   "url":"https://clevelandart.org/art/2","images":{"web":{"url":"https://img/2.jpg"},"print":{"url":"https://img/2p.jpg"}}},
  {"id":3,"title":"Garden Tile","technique":"fritware","images":null},
  {"id":4,"title":"Prayer Rug","technique":"wool","images":{"web":{"url":"https://img/4.jpg"}}}
]}`

func TestAdapter_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "garden Persian", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("has_image"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := New(web.NewClient(web.Config{Rate: -1}), WithBaseURL(srv.URL))
	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	r := results[0]
	assert.Equal(t, "cleveland-2", r.ID)
	assert.Equal(t, []string{"Aqa Mirak (Iranian)"}, r.Authors)
	assert.Equal(t, "c. 1540", r.Year)
	assert.Equal(t, "https://img/2.jpg", r.ThumbnailURL)
	assert.Equal(t, "opaque watercolor and gold on paper; Iran, Safavid period; Islamic Art", r.Abstract)
	assert.Equal(t, "Cleveland Museum of Art", r.SourceLabel)
	assert.Equal(t, domain.OriginCleveland, r.Origin)

	assert.Equal(t, "cleveland-4", results[1].ID)
}

func TestAdapter_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": "nope"}`))
	}))
	defer srv.Close()

	a := New(web.NewClient(web.Config{Rate: -1}), WithBaseURL(srv.URL))
	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
	assert.Nil(t, results)
}

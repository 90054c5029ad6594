package sid

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
)

const page = `<html><body>
<nav><a href="/fa/about">about SID</a></nav>
<div class="item"><div class="head">
  <a href="/paper/101/fa">Bagh-e Fin and its water system</a>
</div><span>Journal of Architecture, 1398</span></div>
<div class="item"><div class="head">
  <a href="/paper/101/fa">Bagh-e Fin and its water system</a>
  <a href="/paper/101/fa/download">PDF</a>
  <a href="/paper/102/fa">short</a>
</div></div>
<div class="item"><div class="head">
  <a href="https://www.sid.ir/ViewPaper.aspx?ID=7">Eram Garden of Shiraz</a>
</div></div>
</body></html>`

func newAdapter(t *testing.T, h http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(web.NewClient(web.Config{Rate: -1}), WithBaseURL(srv.URL))
}

func TestAdapter_Search(t *testing.T) {
	var base string
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, searchPath, r.URL.Path)
		assert.Equal(t, "fin garden", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(page))
	})
	base = a.baseURL

	results, err := a.Search(context.Background(), domain.Query{Text: `"fin" OR garden`})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Bagh-e Fin and its water system", results[0].Title)
	assert.Equal(t, base+"/paper/101/fa", results[0].URL)
	assert.Equal(t, "1398", results[0].Year)
	assert.Equal(t, "SID", results[0].SourceLabel)
	assert.Equal(t, domain.OriginSID, results[0].Origin)
	assert.Equal(t, web.StableID(Name, base+"/paper/101/fa"), results[0].ID)

	assert.Equal(t, "Eram Garden of Shiraz", results[1].Title)
	assert.Equal(t, "https://www.sid.ir/ViewPaper.aspx?ID=7", results[1].URL)
	assert.Empty(t, results[1].Year)
}

func TestAdapter_PersianQueryUsesPersianOnly(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "باغ ایرانی", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`<html></html>`))
	})

	results, err := a.Search(context.Background(), domain.Query{Text: `"باغ ایرانی" OR "Persian Garden"`})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdapter_NoResultSelectorsMatch(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a href="/news/1">Featured garden article</a></body></html>`))
	})

	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAdapter_CapsResults(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<p><a href="/paper/%d/fa">Persian garden study %d</a></p>`, i, i)
	}
	b.WriteString("</body></html>")

	a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(b.String()))
	})

	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	require.NoError(t, err)
	assert.Len(t, results, MaxResults)
}

func TestAdapter_HTTPError(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	results, err := a.Search(context.Background(), domain.Query{Text: "garden"})
	assert.Error(t, err)
	assert.Nil(t, results)
}

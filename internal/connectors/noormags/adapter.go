// Package noormags scrapes the NoorMags Persian journal archive.
// NoorMags indexes Persian text only, so queries without Persian
// content are not sent.
package noormags

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/query"
)

const (
	// Name is the adapter name used in config and logs.
	Name = "noormags"

	// DefaultBaseURL is the site root.
	DefaultBaseURL = "https://www.noormags.ir"

	searchPath    = "/view/fa/search"
	label         = "NoorMags"
	minQueryRunes = 2
)

// resultSelectors are the only elements treated as search hits.
var resultSelectors = []string{
	".search-result-item .title a",
	".article_list .title a",
	"h3 a",
}

// Adapter scrapes NoorMags.
type Adapter struct {
	client  *web.Client
	baseURL string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the site root.
func WithBaseURL(u string) Option {
	return func(a *Adapter) { a.baseURL = strings.TrimRight(u, "/") }
}

// New creates a NoorMags adapter.
func New(client *web.Client, opts ...Option) *Adapter {
	a := &Adapter{client: client, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Verify interface compliance.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Name returns the adapter name.
func (a *Adapter) Name() string { return Name }

// Origin returns the origin system.
func (a *Adapter) Origin() domain.OriginSystem { return domain.OriginNoorMags }

// Group returns the result group.
func (a *Adapter) Group() domain.ResultGroup { return domain.GroupPapers }

// Search sends the Persian part of the augmented query.
func (a *Adapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	text := query.PersianOnly(query.ForPapers(q))
	if query.RuneLen(text) < minQueryRunes {
		return nil, domain.ErrSkipped
	}

	doc, err := a.client.GetHTML(ctx, a.baseURL+searchPath+"?q="+url.QueryEscape(text), nil)
	if err != nil {
		return nil, err
	}
	return a.parse(doc), nil
}

func (a *Adapter) parse(doc *goquery.Document) []domain.SearchResult {
	var results []domain.SearchResult
	seen := make(map[string]bool)

	doc.Find(strings.Join(resultSelectors, ", ")).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		title := strings.Join(strings.Fields(s.Text()), " ")
		if title == "" || strings.TrimSpace(href) == "" {
			return
		}
		link := web.Resolve(a.baseURL, href)
		if seen[link] {
			return
		}
		seen[link] = true

		results = append(results, domain.SearchResult{
			ID:          web.StableID(Name, link),
			Title:       title,
			SourceLabel: label,
			URL:         link,
			Origin:      domain.OriginNoorMags,
		})
	})

	return results
}

// Package ganjoor searches the Ganjoor classical Persian poetry archive.
//
// The JSON API is tried first. When it fails or returns nothing, the
// site's own search page is scraped, reading only its search-result
// blocks; featured or random poem links elsewhere on the page are never
// treated as hits.
package ganjoor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/logger"
	"github.com/custodia-labs/pardis/internal/normalisers/html"
	"github.com/custodia-labs/pardis/internal/query"
)

const (
	// Name is the adapter name used in config and logs.
	Name = "ganjoor"

	// DefaultAPIURL is the poem search endpoint.
	DefaultAPIURL = "https://api.ganjoor.net/api/ganjoor/poem/search"

	// DefaultSiteURL is the public site root.
	DefaultSiteURL = "https://ganjoor.net"

	// PageSize is the number of poems requested from the API.
	PageSize = 12

	apiLabel          = "Ganjoor (API)"
	webLabel          = "Ganjoor (Web)"
	apiExcerptRunes   = 300
	webExcerptRunes   = 200
	minQueryRunes     = 2
	untitledPoem      = "Untitled Poem"
	resultSelector    = ".search-result, .archive-item, .post-summary"
	excerptSelector   = ".excerpt, .entry-summary, p"
	defaultPoetAuthor = "Ganjoor"
)

// Adapter searches Ganjoor.
type Adapter struct {
	client  *web.Client
	apiURL  string
	siteURL string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithAPIURL overrides the poem search endpoint.
func WithAPIURL(u string) Option {
	return func(a *Adapter) { a.apiURL = u }
}

// WithSiteURL overrides the site root used for scraping and links.
func WithSiteURL(u string) Option {
	return func(a *Adapter) { a.siteURL = strings.TrimRight(u, "/") }
}

// New creates a Ganjoor adapter.
func New(client *web.Client, opts ...Option) *Adapter {
	a := &Adapter{client: client, apiURL: DefaultAPIURL, siteURL: DefaultSiteURL}
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
func (a *Adapter) Origin() domain.OriginSystem { return domain.OriginGanjoor }

// Group returns the result group.
func (a *Adapter) Group() domain.ResultGroup { return domain.GroupLiterature }

type poem struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	PoetName  string `json:"poetName"`
	PlainText string `json:"plainText"`
	URL       string `json:"url"`
	FullURL   string `json:"fullUrl"`
}

type poemEnvelope struct {
	Poems []poem `json:"poems"`
}

// Search translates English literary vocabulary to Persian and queries
// the API, falling back to the site search.
func (a *Adapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	text := Shape(q)
	if query.RuneLen(text) < minQueryRunes {
		return nil, domain.ErrSkipped
	}

	results, apiErr := a.searchAPI(ctx, text)
	if apiErr == nil && len(results) > 0 {
		return results, nil
	}
	if apiErr != nil {
		logger.Debug("ganjoor: api failed, scraping site: %v", apiErr)
	}

	results, err := a.searchSite(ctx, text)
	if err != nil {
		if apiErr != nil {
			return nil, fmt.Errorf("api: %v; site: %w", apiErr, err)
		}
		return nil, err
	}
	return results, nil
}

// Shape turns a literature query into the Ganjoor search term.
func Shape(q domain.Query) string {
	text := query.MixedClean(query.ForLiterature(q))
	if text != "" && !query.HasPersian(text) {
		text = query.ToPersianLiterature(text)
	}
	return text
}

func (a *Adapter) searchAPI(ctx context.Context, text string) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("term", text)
	params.Set("catId", "0")
	params.Set("pageNumber", "1")
	params.Set("pageSize", strconv.Itoa(PageSize))

	var raw json.RawMessage
	if err := a.client.GetJSON(ctx, a.apiURL+"?"+params.Encode(), nil, &raw); err != nil {
		return nil, err
	}

	poems, err := decodePoems(raw)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(poems))
	for _, p := range poems {
		results = append(results, a.fromPoem(p))
	}
	return results, nil
}

// decodePoems accepts either a bare array or a {"poems": [...]} envelope.
func decodePoems(raw json.RawMessage) ([]poem, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var poems []poem
		if err := json.Unmarshal(raw, &poems); err != nil {
			return nil, fmt.Errorf("decode poems: %w: %w", domain.ErrMalformedPayload, err)
		}
		return poems, nil
	}
	var env poemEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode poems: %w: %w", domain.ErrMalformedPayload, err)
	}
	return env.Poems, nil
}

func (a *Adapter) fromPoem(p poem) domain.SearchResult {
	title := p.Title
	if title == "" {
		title = "Untitled"
	}
	poet := p.PoetName
	if poet != "" {
		title = poet + " - " + title
	} else {
		poet = defaultPoetAuthor
	}

	link := p.FullURL
	if link == "" {
		link = p.URL
	}
	link = web.Resolve(a.siteURL, link)

	id := web.StableID(Name, link)
	if p.ID != 0 {
		id = Name + "-" + strconv.Itoa(p.ID)
	}

	return domain.SearchResult{
		ID:          id,
		Title:       title,
		Authors:     []string{poet},
		SourceLabel: apiLabel,
		Abstract:    html.Truncate(strings.Join(strings.Fields(p.PlainText), " "), apiExcerptRunes),
		URL:         link,
		Origin:      domain.OriginGanjoor,
	}
}

func (a *Adapter) searchSite(ctx context.Context, text string) ([]domain.SearchResult, error) {
	doc, err := a.client.GetHTML(ctx, a.siteURL+"/?s="+url.QueryEscape(text), nil)
	if err != nil {
		return nil, err
	}
	return a.parseSite(doc), nil
}

func (a *Adapter) parseSite(doc *goquery.Document) []domain.SearchResult {
	var results []domain.SearchResult

	doc.Find(resultSelector).Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		full := web.Resolve(a.siteURL, href)

		title := strings.Join(strings.Fields(link.Text()), " ")
		if title == "" {
			title = untitledPoem
		}

		excerpt := strings.Join(strings.Fields(item.Find(excerptSelector).First().Text()), " ")

		results = append(results, domain.SearchResult{
			ID:          web.StableID(Name, full),
			Title:       title,
			Authors:     []string{defaultPoetAuthor},
			SourceLabel: webLabel,
			Abstract:    html.Truncate(excerpt, webExcerptRunes),
			URL:         full,
			Origin:      domain.OriginGanjoor,
		})
	})

	return results
}

// Package semanticscholar searches the Semantic Scholar Graph API.
package semanticscholar

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/query"
)

const (
	// Name is the adapter name used in config and logs.
	Name = "semantic_scholar"

	// DefaultBaseURL is the paper search endpoint.
	DefaultBaseURL = "https://api.semanticscholar.org/graph/v1/paper/search"

	// PageSize is the number of papers requested.
	PageSize = 8

	fields        = "paperId,title,authors,year,abstract,venue,url,openAccessPdf,citationCount"
	label         = "Semantic Scholar"
	minQueryRunes = 3
)

// Adapter queries Semantic Scholar.
type Adapter struct {
	client  *web.Client
	baseURL string
	apiKey  string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the search endpoint.
func WithBaseURL(u string) Option {
	return func(a *Adapter) { a.baseURL = u }
}

// WithAPIKey sends key as x-api-key.
func WithAPIKey(key string) Option {
	return func(a *Adapter) { a.apiKey = key }
}

// New creates a Semantic Scholar adapter.
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
func (a *Adapter) Origin() domain.OriginSystem { return domain.OriginSemanticScholar }

// Group returns the result group.
func (a *Adapter) Group() domain.ResultGroup { return domain.GroupPapers }

type searchResponse struct {
	Data []paper `json:"data"`
}

type paper struct {
	PaperID       string   `json:"paperId"`
	Title         string   `json:"title"`
	Authors       []author `json:"authors"`
	Year          *int     `json:"year"`
	Abstract      *string  `json:"abstract"`
	Venue         string   `json:"venue"`
	URL           string   `json:"url"`
	OpenAccessPDF *struct {
		URL string `json:"url"`
	} `json:"openAccessPdf"`
	CitationCount *int `json:"citationCount"`
}

type author struct {
	Name string `json:"name"`
}

// Search queries Semantic Scholar with the Latin part of the augmented
// query, falling back to the mixed query when too little Latin remains.
func (a *Adapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	text := query.Prefer(query.LatinOnly, query.ForPapers(q), minQueryRunes)
	if text == "" {
		return nil, domain.ErrSkipped
	}

	params := url.Values{}
	params.Set("query", text)
	params.Set("limit", strconv.Itoa(PageSize))
	params.Set("fields", fields)

	var header http.Header
	if a.apiKey != "" {
		header = http.Header{}
		header.Set("x-api-key", a.apiKey)
	}

	var resp searchResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"?"+params.Encode(), header, &resp); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(resp.Data))
	for _, p := range resp.Data {
		if p.Title == "" {
			continue
		}
		results = append(results, toResult(p))
	}
	return results, nil
}

func toResult(p paper) domain.SearchResult {
	r := domain.SearchResult{
		ID:            p.PaperID,
		Title:         p.Title,
		SourceLabel:   p.Venue,
		URL:           p.URL,
		Origin:        domain.OriginSemanticScholar,
		CitationCount: p.CitationCount,
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.SourceLabel == "" {
		r.SourceLabel = label
	}
	for _, au := range p.Authors {
		if au.Name != "" {
			r.Authors = append(r.Authors, au.Name)
		}
	}
	if p.Year != nil {
		r.Year = strconv.Itoa(*p.Year)
	}
	if p.Abstract != nil {
		r.Abstract = *p.Abstract
	}
	if p.OpenAccessPDF != nil && p.OpenAccessPDF.URL != "" {
		r.URL = p.OpenAccessPDF.URL
	}
	return r
}

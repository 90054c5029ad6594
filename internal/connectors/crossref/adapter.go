// Package crossref searches the CrossRef works API.
//
// CrossRef answers cross-origin requests itself, so the adapter is
// usually wired to a client without a relay.
package crossref

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/normalisers/html"
	"github.com/custodia-labs/pardis/internal/query"
)

const (
	// Name is the adapter name used in config and logs.
	Name = "crossref"

	// DefaultBaseURL is the works endpoint.
	DefaultBaseURL = "https://api.crossref.org/works"

	// Rows is the number of works requested.
	Rows = 10

	// MaxAbstractRunes caps the stripped abstract.
	MaxAbstractRunes = 600

	label         = "CrossRef"
	minQueryRunes = 3
)

// Adapter queries CrossRef.
type Adapter struct {
	client  *web.Client
	baseURL string
	mailto  string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the works endpoint.
func WithBaseURL(u string) Option {
	return func(a *Adapter) { a.baseURL = u }
}

// WithMailto joins CrossRef's polite pool.
func WithMailto(addr string) Option {
	return func(a *Adapter) { a.mailto = addr }
}

// New creates a CrossRef adapter.
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
func (a *Adapter) Origin() domain.OriginSystem { return domain.OriginCrossRef }

// Group returns the result group.
func (a *Adapter) Group() domain.ResultGroup { return domain.GroupPapers }

type worksResponse struct {
	Message *struct {
		Items []work `json:"items"`
	} `json:"message"`
}

type work struct {
	DOI            string   `json:"DOI"`
	Title          []string `json:"title"`
	Author         []person `json:"author"`
	Created        *date    `json:"created"`
	ContainerTitle []string `json:"container-title"`
	Publisher      string   `json:"publisher"`
	Abstract       string   `json:"abstract"`
	URL            string   `json:"URL"`
	ReferencedBy   *int     `json:"is-referenced-by-count"`
}

type person struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type date struct {
	DateParts [][]int `json:"date-parts"`
}

// Search queries CrossRef bibliographic search, sorted by relevance.
func (a *Adapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	text := query.Prefer(query.LatinOnly, query.ForPapers(q), minQueryRunes)
	if text == "" {
		return nil, domain.ErrSkipped
	}

	params := url.Values{}
	params.Set("query.bibliographic", text)
	params.Set("rows", strconv.Itoa(Rows))
	params.Set("sort", "relevance")
	if a.mailto != "" {
		params.Set("mailto", a.mailto)
	}

	var resp worksResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Message == nil {
		return nil, nil
	}

	results := make([]domain.SearchResult, 0, len(resp.Message.Items))
	for _, w := range resp.Message.Items {
		results = append(results, toResult(w))
	}
	return results, nil
}

func toResult(w work) domain.SearchResult {
	r := domain.SearchResult{
		ID:            w.DOI,
		Title:         "Untitled",
		Abstract:      html.Truncate(html.Text(w.Abstract), MaxAbstractRunes),
		URL:           w.URL,
		Origin:        domain.OriginCrossRef,
		CitationCount: w.ReferencedBy,
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if len(w.Title) > 0 && strings.TrimSpace(w.Title[0]) != "" {
		r.Title = html.Text(w.Title[0])
	}
	for _, p := range w.Author {
		if name := p.display(); name != "" {
			r.Authors = append(r.Authors, name)
		}
	}
	if w.Created != nil && len(w.Created.DateParts) > 0 && len(w.Created.DateParts[0]) > 0 {
		r.Year = strconv.Itoa(w.Created.DateParts[0][0])
	}
	switch {
	case len(w.ContainerTitle) > 0 && w.ContainerTitle[0] != "":
		r.SourceLabel = w.ContainerTitle[0]
	case w.Publisher != "":
		r.SourceLabel = w.Publisher
	default:
		r.SourceLabel = label
	}
	return r
}

func (p person) display() string {
	if p.Name != "" {
		return p.Name
	}
	return strings.TrimSpace(p.Given + " " + p.Family)
}

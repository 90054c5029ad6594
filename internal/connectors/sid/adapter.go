// Package sid scrapes the Scientific Information Database (sid.ir)
// paper search. Only anchors that point at paper pages count as hits;
// a page with none of them yields no results.
package sid

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/query"
)

const (
	// Name is the adapter name used in config and logs.
	Name = "sid"

	// DefaultBaseURL is the site root.
	DefaultBaseURL = "https://www.sid.ir"

	// MaxResults caps the number of papers returned.
	MaxResults = 10

	searchPath     = "/fa/search/paper/paper"
	label          = "SID"
	minTitleRunes  = 5
	resultSelector = `a[href*="/paper/"], a[href*="ViewPaper"]`
)

var (
	yearPattern = regexp.MustCompile(`[1-4][0-9]{3}`)

	// Anchors with these words are download or format links, not titles.
	titleStopWords = []string{"دانلود", "PDF"}
)

// Adapter scrapes SID.
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

// New creates a SID adapter.
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
func (a *Adapter) Origin() domain.OriginSystem { return domain.OriginSID }

// Group returns the result group.
func (a *Adapter) Group() domain.ResultGroup { return domain.GroupPapers }

// Search sends the Persian part of the augmented query when it has one,
// otherwise the mixed query.
func (a *Adapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	augmented := query.ForPapers(q)
	var text string
	if query.HasPersian(augmented) {
		text = query.PersianOnly(augmented)
	} else {
		text = query.MixedClean(augmented)
	}
	if text == "" {
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

	doc.Find(resultSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		link := web.Resolve(a.baseURL, href)
		title := strings.Join(strings.Fields(s.Text()), " ")
		if !usableTitle(title) || seen[link] {
			return true
		}
		seen[link] = true

		results = append(results, domain.SearchResult{
			ID:          web.StableID(Name, link),
			Title:       title,
			Year:        yearPattern.FindString(s.Parent().Parent().Text()),
			SourceLabel: label,
			URL:         link,
			Origin:      domain.OriginSID,
		})
		return len(results) < MaxResults
	})

	return results
}

func usableTitle(title string) bool {
	if query.RuneLen(title) < minTitleRunes {
		return false
	}
	for _, w := range titleStopWords {
		if strings.Contains(title, w) {
			return false
		}
	}
	return true
}

// Package met searches The Metropolitan Museum of Art collection API.
// Search returns object ids only; the top ids are fetched concurrently
// and objects without an image are dropped.
package met

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/pardis/internal/connectors/museum"
	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/logger"
)

const (
	// Name is the adapter name used in config and logs.
	Name = "met"

	// DefaultBaseURL is the collection API root.
	DefaultBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"

	// MaxObjects is the number of object ids fetched from a search.
	MaxObjects = 8

	label = "Metropolitan Museum of Art"
)

// Adapter queries the Met.
type Adapter struct {
	client  *web.Client
	baseURL string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the collection API root.
func WithBaseURL(u string) Option {
	return func(a *Adapter) { a.baseURL = strings.TrimRight(u, "/") }
}

// New creates a Met adapter.
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
func (a *Adapter) Origin() domain.OriginSystem { return domain.OriginMet }

// Group returns the result group.
func (a *Adapter) Group() domain.ResultGroup { return domain.GroupArt }

type searchResponse struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

type object struct {
	ObjectID          int    `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ObjectDate        string `json:"objectDate"`
	Period            string `json:"period"`
	Dynasty           string `json:"dynasty"`
	Medium            string `json:"medium"`
	PrimaryImage      string `json:"primaryImage"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	ObjectURL         string `json:"objectURL"`
}

// Search finds object ids, fetches the top MaxObjects and filters them.
func (a *Adapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	text := museum.Shape(q)
	if text == "" {
		return nil, domain.ErrSkipped
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("hasImages", "true")

	var resp searchResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"/search?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	ids := resp.ObjectIDs
	if len(ids) > MaxObjects {
		ids = ids[:MaxObjects]
	}

	objects, err := a.fetchObjects(ctx, ids)
	if err != nil {
		return nil, err
	}

	candidates := make([]museum.Candidate, 0, len(objects))
	for _, o := range objects {
		if o == nil || o.PrimaryImageSmall == "" {
			continue
		}
		candidates = append(candidates, museum.Candidate{Result: toResult(*o), Medium: o.Medium})
	}
	return museum.Filter(museum.Terms(q), candidates), nil
}

// fetchObjects fetches ids concurrently. Slots keep search order; a
// failed fetch leaves its slot nil. Objects the collection no longer
// has (404) are skipped quietly. When every other fetch fails the first
// failure is returned.
func (a *Adapter) fetchObjects(ctx context.Context, ids []int) ([]*object, error) {
	objects := make([]*object, len(ids))
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			var o object
			target := a.baseURL + "/objects/" + strconv.Itoa(id)
			if err := a.client.GetJSON(ctx, target, nil, &o); err != nil {
				logger.Debug("met: object %d: %v", id, err)
				if !web.IsNotFound(err) {
					errs[i] = err
				}
				return
			}
			objects[i] = &o
		}(i, id)
	}
	wg.Wait()

	var first error
	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			if first == nil {
				first = err
			}
		}
	}
	if failed > 0 && failed == len(ids) {
		return nil, fmt.Errorf("met: all %d object fetches failed: %w", failed, first)
	}
	return objects, nil
}

func toResult(o object) domain.SearchResult {
	r := domain.SearchResult{
		ID:           Name + "-" + strconv.Itoa(o.ObjectID),
		Title:        o.Title,
		Year:         o.ObjectDate,
		SourceLabel:  label,
		Abstract:     describe(o),
		URL:          o.ObjectURL,
		ThumbnailURL: o.PrimaryImageSmall,
		Origin:       domain.OriginMet,
	}
	if o.ArtistDisplayName != "" {
		r.Authors = []string{o.ArtistDisplayName}
	}
	return r
}

func describe(o object) string {
	var parts []string
	for _, p := range []string{o.Medium, o.Period, o.Dynasty} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "; ")
}

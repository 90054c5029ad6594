// Package chicago searches the Art Institute of Chicago API for public
// domain artworks and builds IIIF thumbnail URLs for them.
package chicago

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/pardis/internal/connectors/museum"
	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
)

const (
	// Name is the adapter name used in config and logs.
	Name = "chicago"

	// DefaultBaseURL is the artwork search endpoint.
	DefaultBaseURL = "https://api.artic.edu/api/v1/artworks/search"

	// DefaultIIIFURL is the image server root.
	DefaultIIIFURL = "https://www.artic.edu/iiif/2"

	// DefaultSiteURL is the public artwork page root.
	DefaultSiteURL = "https://www.artic.edu/artworks"

	// Limit is the number of artworks requested.
	Limit = 20

	label  = "Art Institute of Chicago"
	fields = "id,title,image_id,artist_display,date_display,medium_display,place_of_origin"
)

// Adapter queries the Art Institute of Chicago.
type Adapter struct {
	client  *web.Client
	baseURL string
	iiifURL string
	siteURL string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the search endpoint.
func WithBaseURL(u string) Option {
	return func(a *Adapter) { a.baseURL = u }
}

// WithIIIFURL overrides the image server root.
func WithIIIFURL(u string) Option {
	return func(a *Adapter) { a.iiifURL = strings.TrimRight(u, "/") }
}

// New creates a Chicago adapter.
func New(client *web.Client, opts ...Option) *Adapter {
	a := &Adapter{
		client:  client,
		baseURL: DefaultBaseURL,
		iiifURL: DefaultIIIFURL,
		siteURL: DefaultSiteURL,
	}
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
func (a *Adapter) Origin() domain.OriginSystem { return domain.OriginChicago }

// Group returns the result group.
func (a *Adapter) Group() domain.ResultGroup { return domain.GroupArt }

type searchResponse struct {
	Data []artwork `json:"data"`
}

type artwork struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	ImageID       *string `json:"image_id"`
	ArtistDisplay string  `json:"artist_display"`
	DateDisplay   string  `json:"date_display"`
	MediumDisplay string  `json:"medium_display"`
	PlaceOfOrigin string  `json:"place_of_origin"`
}

// Search queries public domain artworks.
func (a *Adapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	text := museum.Shape(q)
	if text == "" {
		return nil, domain.ErrSkipped
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("query[term][is_public_domain]", "true")
	params.Set("limit", strconv.Itoa(Limit))
	params.Set("fields", fields)

	var resp searchResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	candidates := make([]museum.Candidate, 0, len(resp.Data))
	for _, art := range resp.Data {
		if art.ImageID == nil || *art.ImageID == "" {
			continue
		}
		candidates = append(candidates, museum.Candidate{
			Result: a.toResult(art),
			Medium: art.MediumDisplay,
		})
	}
	return museum.Filter(museum.Terms(q), candidates), nil
}

// Thumbnail returns the 400px-wide IIIF rendition of an image.
func (a *Adapter) Thumbnail(imageID string) string {
	return a.iiifURL + "/" + imageID + "/full/400,/0/default.jpg"
}

func (a *Adapter) toResult(art artwork) domain.SearchResult {
	r := domain.SearchResult{
		ID:           Name + "-" + strconv.Itoa(art.ID),
		Title:        art.Title,
		Year:         art.DateDisplay,
		SourceLabel:  label,
		URL:          a.siteURL + "/" + strconv.Itoa(art.ID),
		ThumbnailURL: a.Thumbnail(*art.ImageID),
		Origin:       domain.OriginChicago,
	}
	if art.ArtistDisplay != "" {
		r.Authors = []string{art.ArtistDisplay}
	}

	var parts []string
	for _, p := range []string{art.MediumDisplay, art.PlaceOfOrigin} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	r.Abstract = strings.Join(parts, "; ")
	return r
}

// Package cleveland searches the Cleveland Museum of Art open access API.
package cleveland

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
	Name = "cleveland"

	// DefaultBaseURL is the artworks endpoint.
	DefaultBaseURL = "https://openaccess-api.clevelandart.org/api/artworks"

	// Limit is the number of artworks requested.
	Limit = 20

	label = "Cleveland Museum of Art"
)

// Adapter queries the Cleveland Museum of Art.
type Adapter struct {
	client  *web.Client
	baseURL string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the artworks endpoint.
func WithBaseURL(u string) Option {
	return func(a *Adapter) { a.baseURL = u }
}

// New creates a Cleveland adapter.
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
func (a *Adapter) Origin() domain.OriginSystem { return domain.OriginCleveland }

// Group returns the result group.
func (a *Adapter) Group() domain.ResultGroup { return domain.GroupArt }

type artworksResponse struct {
	Data []artwork `json:"data"`
}

type artwork struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	CreationDate string    `json:"creation_date"`
	Creators     []creator `json:"creators"`
	Culture      []string  `json:"culture"`
	Technique    string    `json:"technique"`
	Department   string    `json:"department"`
	URL          string    `json:"url"`
	Images       *struct {
		Web   *image `json:"web"`
		Print *image `json:"print"`
	} `json:"images"`
}

type creator struct {
	Description string `json:"description"`
}

type image struct {
	URL string `json:"url"`
}

// Search queries artworks that have images.
func (a *Adapter) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	text := museum.Shape(q)
	if text == "" {
		return nil, domain.ErrSkipped
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("has_image", "1")
	params.Set("limit", strconv.Itoa(Limit))

	var resp artworksResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	candidates := make([]museum.Candidate, 0, len(resp.Data))
	for _, art := range resp.Data {
		thumb := art.webImage()
		if thumb == "" {
			continue
		}
		candidates = append(candidates, museum.Candidate{
			Result: toResult(art, thumb),
			Medium: art.Technique,
		})
	}
	return museum.Filter(museum.Terms(q), candidates), nil
}

func (a artwork) webImage() string {
	if a.Images == nil || a.Images.Web == nil {
		return ""
	}
	return a.Images.Web.URL
}

func toResult(a artwork, thumb string) domain.SearchResult {
	r := domain.SearchResult{
		ID:           Name + "-" + strconv.Itoa(a.ID),
		Title:        a.Title,
		Year:         a.CreationDate,
		SourceLabel:  label,
		URL:          a.URL,
		ThumbnailURL: thumb,
		Origin:       domain.OriginCleveland,
	}
	if len(a.Creators) > 0 && a.Creators[0].Description != "" {
		r.Authors = []string{a.Creators[0].Description}
	}

	var parts []string
	if a.Technique != "" {
		parts = append(parts, a.Technique)
	}
	if len(a.Culture) > 0 && a.Culture[0] != "" {
		parts = append(parts, a.Culture[0])
	}
	if a.Department != "" {
		parts = append(parts, a.Department)
	}
	r.Abstract = strings.Join(parts, "; ")
	return r
}

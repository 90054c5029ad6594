package connectors

import (
	"net/http"

	"github.com/custodia-labs/pardis/internal/connectors/chicago"
	"github.com/custodia-labs/pardis/internal/connectors/cleveland"
	"github.com/custodia-labs/pardis/internal/connectors/crossref"
	"github.com/custodia-labs/pardis/internal/connectors/ganjoor"
	"github.com/custodia-labs/pardis/internal/connectors/met"
	"github.com/custodia-labs/pardis/internal/connectors/noormags"
	"github.com/custodia-labs/pardis/internal/connectors/semanticscholar"
	"github.com/custodia-labs/pardis/internal/connectors/sid"
	"github.com/custodia-labs/pardis/internal/connectors/travelogue"
	"github.com/custodia-labs/pardis/internal/connectors/web"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
)

// Names lists every adapter in fan-out order.
var Names = []string{
	sid.Name,
	noormags.Name,
	semanticscholar.Name,
	crossref.Name,
	met.Name,
	cleveland.Name,
	chicago.Name,
	ganjoor.Name,
	travelogue.Name,
}

// IsKnown returns true if name is a registered adapter.
func IsKnown(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Build returns the enabled adapters in fan-out order: papers (SID,
// NoorMags, Semantic Scholar, CrossRef), art (Met, Cleveland, Chicago),
// then literature (Ganjoor, travelogues). Each remote source gets its own
// client so rate limiting is per source. hc may be nil.
func Build(settings domain.SourceSettings, hc *http.Client) []driven.SourceAdapter {
	relayed := func() *web.Client {
		return web.NewClient(web.Config{
			RelayURL:   settings.RelayURL,
			UserAgent:  settings.UserAgent,
			HTTPClient: hc,
		})
	}
	direct := func() *web.Client {
		return web.NewClient(web.Config{
			UserAgent:  settings.UserAgent,
			HTTPClient: hc,
		})
	}

	all := []driven.SourceAdapter{
		sid.New(relayed()),
		noormags.New(relayed()),
		semanticscholar.New(relayed(), semanticscholar.WithAPIKey(settings.SemanticScholarAPIKey)),
		crossref.New(direct(), crossref.WithMailto(settings.CrossRefMailto)),
		met.New(relayed()),
		cleveland.New(relayed()),
		chicago.New(relayed()),
		ganjoor.New(relayed()),
		travelogue.New(nil),
	}

	enabled := make([]driven.SourceAdapter, 0, len(all))
	for _, a := range all {
		if settings.IsDisabled(a.Name()) {
			continue
		}
		enabled = append(enabled, a)
	}
	return enabled
}

package domain

import "time"

// OriginSystem identifies the remote system a result came from.
type OriginSystem string

// Known origin systems.
const (
	OriginSemanticScholar OriginSystem = "semantic_scholar"
	OriginCrossRef        OriginSystem = "crossref"
	OriginSID             OriginSystem = "sid"
	OriginNoorMags        OriginSystem = "noormags"
	OriginGanjoor         OriginSystem = "ganjoor"
	OriginTravelogue      OriginSystem = "travelogue"
	OriginMet             OriginSystem = "met"
	OriginCleveland       OriginSystem = "cleveland"
	OriginChicago         OriginSystem = "chicago"
	OriginManual          OriginSystem = "manual"
)

// IsValid returns true if the origin is recognised.
func (o OriginSystem) IsValid() bool {
	switch o {
	case OriginSemanticScholar, OriginCrossRef, OriginSID, OriginNoorMags,
		OriginGanjoor, OriginTravelogue, OriginMet, OriginCleveland,
		OriginChicago, OriginManual:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o OriginSystem) String() string {
	return string(o)
}

// DocType returns the library document type for results from o.
func (o OriginSystem) DocType() DocType {
	switch o {
	case OriginMet, OriginCleveland, OriginChicago:
		return DocTypeArtwork
	case OriginTravelogue:
		return DocTypeTravelogue
	default:
		return DocTypePaper
	}
}

// ResultGroup is the bucket a source's results are reported under.
type ResultGroup string

// Result groups returned by federated search.
const (
	GroupPapers     ResultGroup = "papers"
	GroupArt        ResultGroup = "art"
	GroupLiterature ResultGroup = "literature"
)

// IsValid returns true if the group is recognised.
func (g ResultGroup) IsValid() bool {
	return g == GroupPapers || g == GroupArt || g == GroupLiterature
}

// SearchResult is a single hit from a remote source.
// It is ephemeral and only becomes a LibraryRecord on explicit save.
type SearchResult struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Authors      []string     `json:"authors"`
	Year         string       `json:"year,omitempty"`
	SourceLabel  string       `json:"sourceLabel"`
	Abstract     string       `json:"abstract,omitempty"`
	URL          string       `json:"url,omitempty"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
	Origin       OriginSystem `json:"originSystem"`

	// CitationCount is nil when the source does not report citations.
	CitationCount *int `json:"citationCount,omitempty"`
}

// SearchFilters refines a federated search.
type SearchFilters struct {
	Period Period `json:"period,omitempty"`
	Topic  Topic  `json:"topic,omitempty"`

	// GardenContext forces Persian-garden vocabulary into every query.
	GardenContext bool `json:"gardenContext,omitempty"`
}

// Query is what the coordinator hands every adapter.
type Query struct {
	// Text is the raw user query. Adapters sanitise it themselves.
	Text    string
	Filters SearchFilters
}

// FederatedResults is the grouped output of searchAll.
type FederatedResults struct {
	Papers     []SearchResult  `json:"papers"`
	Art        []SearchResult  `json:"art"`
	Literature []SearchResult  `json:"literature"`
	Outcomes   []SourceOutcome `json:"-"`
}

// Total returns the number of results across all groups.
func (r FederatedResults) Total() int {
	return len(r.Papers) + len(r.Art) + len(r.Literature)
}

// SourceOutcome records how one adapter fared during a fan-out.
type SourceOutcome struct {
	Source   string
	Group    ResultGroup
	Count    int
	Duration time.Duration

	// Err is the adapter error that was converted to an empty result.
	Err error

	// Skipped is true when the adapter declined to call its backend
	// because the query carried too little signal for it.
	Skipped bool
}

// Failed returns true if the adapter errored or timed out.
func (o SourceOutcome) Failed() bool {
	return o.Err != nil
}

package domain

import "time"

// SourceSettings configures how remote sources are queried.
type SourceSettings struct {
	// Timeout bounds each adapter call.
	Timeout time.Duration

	// AggregateGrace is how long past Timeout the coordinator waits
	// for stragglers before returning partial results.
	AggregateGrace time.Duration

	// RelayURL is a prefix that target URLs are appended to, query-escaped.
	// Empty means requests go direct.
	RelayURL string

	// UserAgent is sent on every outbound request.
	UserAgent string

	// Disabled lists adapter names left out of the fan-out.
	Disabled []string

	// CrossRefMailto joins CrossRef's polite pool when set.
	CrossRefMailto string

	// SemanticScholarAPIKey is sent as x-api-key when set.
	SemanticScholarAPIKey string
}

// IsDisabled returns true if the named adapter is switched off.
func (s SourceSettings) IsDisabled(name string) bool {
	for _, d := range s.Disabled {
		if d == name {
			return true
		}
	}
	return false
}

// SearchSettings holds federated search behaviour.
type SearchSettings struct {
	// GardenContext forces Persian-garden vocabulary into every query.
	GardenContext bool
}

// IndexSettings holds local full-text search behaviour.
type IndexSettings struct {
	// ResultLimit is the default number of ids searchLocal returns.
	ResultLimit int
}

// LibrarySettings holds local library locations.
type LibrarySettings struct {
	// DataDir holds the sqlite database and blob store.
	DataDir string

	// InboxDir is watched for PDFs to harvest.
	InboxDir string
}

// Settings holds all application settings.
type Settings struct {
	Sources SourceSettings
	Search  SearchSettings
	Index   IndexSettings
	Library LibrarySettings
}

// Default values for settings.
const (
	DefaultSourceTimeout    = 10 * time.Second
	DefaultAggregateGrace   = 2 * time.Second
	DefaultLocalResultLimit = 20
	DefaultUserAgent        = "pardis"
)

// DefaultSettings returns settings with sensible defaults.
// Library paths are left empty; storage adapters resolve them under ~/.pardis.
func DefaultSettings() Settings {
	return Settings{
		Sources: SourceSettings{
			Timeout:        DefaultSourceTimeout,
			AggregateGrace: DefaultAggregateGrace,
			UserAgent:      DefaultUserAgent,
		},
		Index: IndexSettings{
			ResultLimit: DefaultLocalResultLimit,
		},
	}
}

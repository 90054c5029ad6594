package services

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/core/ports/driving"
	"github.com/custodia-labs/pardis/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyTimeout        = "sources.timeout_seconds"
	keyAggregateGrace = "sources.aggregate_grace_seconds"
	keyRelayURL       = "sources.relay_url"
	keyUserAgent      = "sources.user_agent"
	keyDisabled       = "sources.disabled"
	keyCrossRefMailto = "sources.crossref_mailto"
	keyS2APIKey       = "sources.semantic_scholar_api_key"
	keyGardenContext  = "search.garden_context"
	keyResultLimit    = "index.result_limit"
	keyDataDir        = "library.data_dir"
	keyInboxDir       = "library.inbox_dir"
)

var knownKeys = map[string]bool{
	keyTimeout: true, keyAggregateGrace: true, keyRelayURL: true,
	keyUserAgent: true, keyDisabled: true, keyCrossRefMailto: true,
	keyS2APIKey: true, keyGardenContext: true, keyResultLimit: true,
	keyDataDir: true, keyInboxDir: true,
}

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvRelayURL       = "PARDIS_RELAY_URL"
	EnvCrossRefMailto = "PARDIS_CROSSREF_MAILTO"
	EnvS2APIKey       = "SEMANTIC_SCHOLAR_API_KEY"
	EnvDataDir        = "PARDIS_DATA_DIR"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore  driven.ConfigStore
	knownSources []string
	lookupEnv    func(string) (string, bool)
}

// NewSettingsService creates a new settings service. knownSources is
// the list of adapter names that sources.disabled may contain.
func NewSettingsService(configStore driven.ConfigStore, knownSources []string) *SettingsService {
	return &SettingsService{
		configStore:  configStore,
		knownSources: knownSources,
		lookupEnv:    os.LookupEnv,
	}
}

// Get retrieves current application settings with defaults and
// environment overrides applied.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	for _, key := range s.UnknownKeys() {
		logger.Warn("settings: ignoring unknown key %q in %s", key, s.configStore.Path())
	}

	settings := &domain.Settings{
		Sources: domain.SourceSettings{
			Timeout:               s.getSeconds(keyTimeout, defaults.Sources.Timeout, false),
			AggregateGrace:        s.getSeconds(keyAggregateGrace, defaults.Sources.AggregateGrace, true),
			RelayURL:              s.getEnvOrString(EnvRelayURL, keyRelayURL, ""),
			UserAgent:             s.getString(keyUserAgent, defaults.Sources.UserAgent),
			Disabled:              s.configStore.GetStringSlice(keyDisabled),
			CrossRefMailto:        s.getEnvOrString(EnvCrossRefMailto, keyCrossRefMailto, ""),
			SemanticScholarAPIKey: s.getEnvOrString(EnvS2APIKey, keyS2APIKey, ""),
		},
		Search: domain.SearchSettings{
			GardenContext: s.configStore.GetBool(keyGardenContext),
		},
		Index: domain.IndexSettings{
			ResultLimit: s.getInt(keyResultLimit, defaults.Index.ResultLimit),
		},
		Library: domain.LibrarySettings{
			DataDir:  s.getEnvOrString(EnvDataDir, keyDataDir, s.defaultDir("data")),
			InboxDir: s.getString(keyInboxDir, s.defaultDir("inbox")),
		},
	}

	return settings, nil
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case keyTimeout, keyResultLimit:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer: %w", key, domain.ErrInvalidInput)
		}
		stored = n
	case keyAggregateGrace:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer: %w", key, domain.ErrInvalidInput)
		}
		stored = n
	case keyRelayURL:
		if value != "" && !isHTTPURL(value) {
			return fmt.Errorf("%s must be an http(s) URL: %w", key, domain.ErrInvalidInput)
		}
		stored = value
	case keyGardenContext:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, domain.ErrInvalidInput)
		}
		stored = b
	case keyDisabled:
		names, err := s.parseSourceList(value)
		if err != nil {
			return err
		}
		stored = names
	case keyUserAgent, keyCrossRefMailto, keyS2APIKey, keyDataDir, keyInboxDir:
		stored = value
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Values returns the effective value of every known key.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		keyTimeout:        strconv.Itoa(int(settings.Sources.Timeout / time.Second)),
		keyAggregateGrace: strconv.Itoa(int(settings.Sources.AggregateGrace / time.Second)),
		keyRelayURL:       settings.Sources.RelayURL,
		keyUserAgent:      settings.Sources.UserAgent,
		keyDisabled:       strings.Join(settings.Sources.Disabled, ","),
		keyCrossRefMailto: settings.Sources.CrossRefMailto,
		keyS2APIKey:       mask(settings.Sources.SemanticScholarAPIKey),
		keyGardenContext:  strconv.FormatBool(settings.Search.GardenContext),
		keyResultLimit:    strconv.Itoa(settings.Index.ResultLimit),
		keyDataDir:        settings.Library.DataDir,
		keyInboxDir:       settings.Library.InboxDir,
	}, nil
}

// UnknownKeys lists stored keys that no setting reads, typically typos
// in a hand-edited config file.
func (s *SettingsService) UnknownKeys() []string {
	var unknown []string
	for _, key := range s.configStore.Keys() {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getEnvOrString(env, key, fallback string) string {
	if v, ok := s.lookupEnv(env); ok && v != "" {
		return v
	}
	return s.getString(key, fallback)
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return fallback
}

func (s *SettingsService) getSeconds(key string, fallback time.Duration, allowZero bool) time.Duration {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	v := s.configStore.GetInt(key)
	if v < 0 || (v == 0 && !allowZero) {
		return fallback
	}
	return time.Duration(v) * time.Second
}

// defaultDir places name beside the config file. A store without a
// file path yields "".
func (s *SettingsService) defaultDir(name string) string {
	path := s.configStore.Path()
	if !filepath.IsAbs(path) {
		return ""
	}
	return filepath.Join(filepath.Dir(path), name)
}

func (s *SettingsService) parseSourceList(value string) ([]string, error) {
	names := []string{}
	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !s.isKnownSource(name) {
			return nil, fmt.Errorf("unknown source %q (known: %s): %w",
				name, strings.Join(s.knownSources, ", "), domain.ErrInvalidInput)
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *SettingsService) isKnownSource(name string) bool {
	for _, known := range s.knownSources {
		if known == name {
			return true
		}
	}
	return false
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

package services

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pardis/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/logger"
)

var testSources = []string{"sid", "noormags", "met", "ganjoor"}

func newSettingsService(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store, testSources)
	svc.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return svc, store
}

func TestSettingsService_Defaults(t *testing.T) {
	svc, _ := newSettingsService(nil)

	settings, err := svc.Get()
	require.NoError(t, err)

	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Sources.Timeout, settings.Sources.Timeout)
	assert.Equal(t, defaults.Sources.AggregateGrace, settings.Sources.AggregateGrace)
	assert.Equal(t, defaults.Sources.UserAgent, settings.Sources.UserAgent)
	assert.Equal(t, defaults.Index.ResultLimit, settings.Index.ResultLimit)
	assert.False(t, settings.Search.GardenContext)
	assert.Empty(t, settings.Sources.RelayURL)
	assert.Empty(t, settings.Library.DataDir)
}

func TestSettingsService_StoredValues(t *testing.T) {
	svc, store := newSettingsService(nil)
	require.NoError(t, store.Set("sources.timeout_seconds", int64(4)))
	require.NoError(t, store.Set("sources.aggregate_grace_seconds", int64(0)))
	require.NoError(t, store.Set("sources.relay_url", "https://corsproxy.io/?"))
	require.NoError(t, store.Set("sources.disabled", []any{"met"}))
	require.NoError(t, store.Set("search.garden_context", true))
	require.NoError(t, store.Set("index.result_limit", int64(50)))

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, 4*time.Second, settings.Sources.Timeout)
	assert.Zero(t, settings.Sources.AggregateGrace)
	assert.Equal(t, "https://corsproxy.io/?", settings.Sources.RelayURL)
	assert.True(t, settings.Sources.IsDisabled("met"))
	assert.True(t, settings.Search.GardenContext)
	assert.Equal(t, 50, settings.Index.ResultLimit)
}

func TestSettingsService_InvalidStoredValuesFallBack(t *testing.T) {
	svc, store := newSettingsService(nil)
	require.NoError(t, store.Set("sources.timeout_seconds", int64(-3)))
	require.NoError(t, store.Set("index.result_limit", "many"))

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSourceTimeout, settings.Sources.Timeout)
	assert.Equal(t, domain.DefaultLocalResultLimit, settings.Index.ResultLimit)
}

func TestSettingsService_EnvironmentOverrides(t *testing.T) {
	svc, store := newSettingsService(map[string]string{
		EnvRelayURL:       "https://relay.example/?u=",
		EnvCrossRefMailto: "me@example.org",
		EnvS2APIKey:       "secret",
		EnvDataDir:        "/srv/pardis",
	})
	require.NoError(t, store.Set("sources.relay_url", "https://ignored.example/?"))

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, "https://relay.example/?u=", settings.Sources.RelayURL)
	assert.Equal(t, "me@example.org", settings.Sources.CrossRefMailto)
	assert.Equal(t, "secret", settings.Sources.SemanticScholarAPIKey)
	assert.Equal(t, "/srv/pardis", settings.Library.DataDir)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{"sources.timeout_seconds", "12", 12},
		{"sources.aggregate_grace_seconds", "0", 0},
		{"sources.relay_url", "https://corsproxy.io/?", "https://corsproxy.io/?"},
		{"sources.relay_url", "", ""},
		{"sources.disabled", "met, sid", []string{"met", "sid"}},
		{"sources.disabled", "", []string{}},
		{"search.garden_context", "true", true},
		{"index.result_limit", "5", 5},
		{"sources.user_agent", "pardis/test", "pardis/test"},
		{"library.inbox_dir", "/tmp/inbox", "/tmp/inbox"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			svc, store := newSettingsService(nil)

			require.NoError(t, svc.Set(tt.key, tt.value))

			got, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_SetRejects(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"sources.timeout_seconds", "0"},
		{"sources.timeout_seconds", "ten"},
		{"sources.aggregate_grace_seconds", "-1"},
		{"sources.relay_url", "ftp://relay"},
		{"sources.relay_url", "corsproxy"},
		{"sources.disabled", "met,unknown"},
		{"search.garden_context", "maybe"},
		{"index.result_limit", "-5"},
		{"no.such.key", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			svc, store := newSettingsService(nil)

			err := svc.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestSettingsService_ValuesMasksSecrets(t *testing.T) {
	svc, _ := newSettingsService(map[string]string{EnvS2APIKey: "secret"})

	values, err := svc.Values()
	require.NoError(t, err)

	assert.Equal(t, "********", values["sources.semantic_scholar_api_key"])
	assert.Equal(t, "10", values["sources.timeout_seconds"])
	assert.Equal(t, "false", values["search.garden_context"])
	assert.Contains(t, values, "library.inbox_dir")
	assert.Len(t, values, 11)
}

func TestSettingsService_Path(t *testing.T) {
	svc, _ := newSettingsService(nil)
	assert.Equal(t, ":memory:", svc.Path())
}

func TestSettingsService_UnknownKeys(t *testing.T) {
	svc, store := newSettingsService(nil)
	require.NoError(t, svc.Set("index.result_limit", "5"))
	require.NoError(t, store.Set("sources.timout_seconds", 3))
	require.NoError(t, store.Set("garden", true))

	assert.Equal(t, []string{"garden", "sources.timout_seconds"}, svc.UnknownKeys())
}

func TestSettingsService_GetWarnsOnUnknownKeys(t *testing.T) {
	buf := new(bytes.Buffer)
	logger.SetOutput(buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
	})

	svc, store := newSettingsService(nil)
	require.NoError(t, store.Set("sources.timout_seconds", 3))

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSourceTimeout, settings.Sources.Timeout)
	assert.Contains(t, buf.String(), `unknown key "sources.timout_seconds"`)
}

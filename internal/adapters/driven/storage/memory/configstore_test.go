package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("sources.relay_url", "https://relay.example/?"))
	require.NoError(t, store.Set("sources.timeout_seconds", int64(7)))
	require.NoError(t, store.Set("index.result_limit", float64(30)))
	require.NoError(t, store.Set("search.garden_context", true))
	require.NoError(t, store.Set("sources.disabled", []any{"met", 3, "sid"}))

	assert.Equal(t, "https://relay.example/?", store.GetString("sources.relay_url"))
	assert.Equal(t, 7, store.GetInt("sources.timeout_seconds"))
	assert.Equal(t, 30, store.GetInt("index.result_limit"))
	assert.True(t, store.GetBool("search.garden_context"))
	assert.Equal(t, []string{"met", "sid"}, store.GetStringSlice("sources.disabled"))
}

func TestConfigStore_WrongTypeIsZero(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", 42))

	assert.Empty(t, store.GetString("k"))
	assert.False(t, store.GetBool("k"))
	assert.Nil(t, store.GetStringSlice("k"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	assert.Empty(t, store.Keys())

	require.NoError(t, store.Set("sources.user_agent", "ua"))
	require.NoError(t, store.Set("index.result_limit", 5))

	assert.Equal(t, []string{"index.result_limit", "sources.user_agent"}, store.Keys())
}

func TestConfigStore_LoadAndPath(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("index.result_limit", n)
			_ = store.GetInt("index.result_limit")
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []string{"index.result_limit"}, store.Keys())
}

func TestConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"sources.user_agent": "pardis/test"}
	store := NewConfigStore(seed)
	seed["sources.user_agent"] = "changed"

	assert.Equal(t, "pardis/test", store.GetString("sources.user_agent"))
}

func TestConfigStore_StringSliceIsCopy(t *testing.T) {
	store := NewConfigStore(map[string]any{"sources.disabled": []string{"met"}})

	got := store.GetStringSlice("sources.disabled")
	got[0] = "sid"

	assert.Equal(t, []string{"met"}, store.GetStringSlice("sources.disabled"))
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
)

func TestNewFanOut_Defaults(t *testing.T) {
	f := NewFanOut(0, -1)
	assert.Equal(t, domain.DefaultSourceTimeout, f.timeout)
	assert.Equal(t, domain.DefaultAggregateGrace, f.grace)
}

func TestFanOut_ResultsInAdapterOrder(t *testing.T) {
	slow := &fakeAdapter{
		name: "slow", group: domain.GroupPapers, origin: domain.OriginSID,
		results: []domain.SearchResult{result("Slow", domain.OriginSID)},
		delay:   50 * time.Millisecond,
	}
	fast := &fakeAdapter{
		name: "fast", group: domain.GroupPapers, origin: domain.OriginCrossRef,
		results: []domain.SearchResult{result("Fast", domain.OriginCrossRef)},
	}

	results, outcomes := NewFanOut(time.Second, 0).Run(
		context.Background(), []driven.SourceAdapter{slow, fast}, domain.Query{Text: "bagh"})

	require.Len(t, results, 2)
	assert.Equal(t, "Slow", results[0][0].Title)
	assert.Equal(t, "Fast", results[1][0].Title)
	assert.Equal(t, "slow", outcomes[0].Source)
	assert.Equal(t, 1, outcomes[0].Count)
	assert.False(t, outcomes[0].Failed())
}

func TestFanOut_FailuresBecomeEmpty(t *testing.T) {
	tests := []struct {
		name    string
		adapter *fakeAdapter
		skipped bool
		failed  bool
	}{
		{"error", &fakeAdapter{name: "e", err: errors.New("status 500")}, false, true},
		{"rate limited", &fakeAdapter{name: "r", err: domain.ErrRateLimited}, false, true},
		{"panic", &fakeAdapter{name: "p", panics: true}, false, true},
		{"skipped", &fakeAdapter{name: "s", err: domain.ErrSkipped}, true, false},
		{"timeout", &fakeAdapter{name: "t", delay: time.Second}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := &fakeAdapter{name: "ok", results: []domain.SearchResult{result("Eram", domain.OriginMet)}}

			results, outcomes := NewFanOut(20*time.Millisecond, 0).Run(
				context.Background(), []driven.SourceAdapter{tt.adapter, ok}, domain.Query{Text: "q"})

			assert.Nil(t, results[0])
			assert.Len(t, results[1], 1)
			assert.Equal(t, tt.skipped, outcomes[0].Skipped)
			assert.Equal(t, tt.failed, outcomes[0].Failed())
		})
	}
}

func TestFanOut_AbandonsStragglersAfterGrace(t *testing.T) {
	// Ignores its context, so only the aggregate deadline can end the wait.
	stuck := &stubbornAdapter{release: make(chan struct{})}
	defer close(stuck.release)

	start := time.Now()
	results, outcomes := NewFanOut(10*time.Millisecond, 10*time.Millisecond).Run(
		context.Background(), []driven.SourceAdapter{stuck}, domain.Query{Text: "q"})

	assert.Less(t, time.Since(start), time.Second)
	assert.Nil(t, results[0])
	assert.True(t, outcomes[0].Failed())
}

func TestFanOut_ContextCancelled(t *testing.T) {
	stuck := &stubbornAdapter{release: make(chan struct{})}
	defer close(stuck.release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, outcomes := NewFanOut(time.Minute, time.Minute).Run(ctx, []driven.SourceAdapter{stuck}, domain.Query{Text: "q"})

	assert.True(t, outcomes[0].Failed())
}

func TestFanOut_NoAdapters(t *testing.T) {
	results, outcomes := NewFanOut(time.Second, 0).Run(context.Background(), nil, domain.Query{Text: "q"})
	assert.Empty(t, results)
	assert.Empty(t, outcomes)
}

func TestFanOut_PassesQueryThrough(t *testing.T) {
	a := &fakeAdapter{name: "a"}
	q := domain.Query{Text: "باغ", Filters: domain.SearchFilters{Period: domain.PeriodSafavid}}

	NewFanOut(time.Second, 0).Run(context.Background(), []driven.SourceAdapter{a}, q)

	require.Len(t, a.queries(), 1)
	assert.Equal(t, q, a.queries()[0])
}

type stubbornAdapter struct {
	release chan struct{}
}

func (s *stubbornAdapter) Name() string                { return "stubborn" }
func (s *stubbornAdapter) Origin() domain.OriginSystem { return domain.OriginMet }
func (s *stubbornAdapter) Group() domain.ResultGroup   { return domain.GroupArt }

func (s *stubbornAdapter) Search(context.Context, domain.Query) ([]domain.SearchResult, error) {
	<-s.release
	return []domain.SearchResult{result("late", domain.OriginMet)}, nil
}

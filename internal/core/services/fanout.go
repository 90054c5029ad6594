package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/logger"
)

// errAbandoned marks an adapter that had not answered when the
// aggregate deadline passed.
var errAbandoned = errors.New("abandoned after aggregate deadline")

// FanOut invokes adapters concurrently and converts their failures to
// empty contributions.
type FanOut struct {
	timeout time.Duration
	grace   time.Duration
}

// NewFanOut creates a coordinator. Each adapter call is bounded by
// timeout; results still missing at timeout+grace are abandoned.
// Non-positive values use the domain defaults.
func NewFanOut(timeout, grace time.Duration) *FanOut {
	if timeout <= 0 {
		timeout = domain.DefaultSourceTimeout
	}
	if grace < 0 {
		grace = domain.DefaultAggregateGrace
	}
	return &FanOut{timeout: timeout, grace: grace}
}

type adapterDone struct {
	idx      int
	results  []domain.SearchResult
	err      error
	duration time.Duration
}

// Run calls every adapter with q and returns one result slice and one
// outcome per adapter, both in adapter order regardless of arrival order.
// It never returns an error; failed, skipped and abandoned adapters
// contribute nil results and record why in their outcome.
func (f *FanOut) Run(
	ctx context.Context, adapters []driven.SourceAdapter, q domain.Query,
) ([][]domain.SearchResult, []domain.SourceOutcome) {
	logger.Section("Federated Search")
	logger.Debug("Query: %q, %d sources", q.Text, len(adapters))

	results := make([][]domain.SearchResult, len(adapters))
	outcomes := make([]domain.SourceOutcome, len(adapters))
	for i, a := range adapters {
		outcomes[i] = domain.SourceOutcome{Source: a.Name(), Group: a.Group(), Err: errAbandoned}
	}
	if len(adapters) == 0 {
		return results, outcomes
	}

	done := make(chan adapterDone, len(adapters))
	for i, a := range adapters {
		go f.call(ctx, i, a, q, done)
	}

	deadline := time.NewTimer(f.timeout + f.grace)
	defer deadline.Stop()

	for pending := len(adapters); pending > 0; pending-- {
		select {
		case d := <-done:
			f.record(adapters[d.idx], d, results, outcomes)
		case <-deadline.C:
			f.logAbandoned(outcomes)
			return results, outcomes
		case <-ctx.Done():
			f.logAbandoned(outcomes)
			return results, outcomes
		}
	}
	return results, outcomes
}

func (f *FanOut) call(
	ctx context.Context, idx int, a driven.SourceAdapter, q domain.Query, done chan<- adapterDone,
) {
	start := time.Now()
	d := adapterDone{idx: idx}
	defer func() {
		if r := recover(); r != nil {
			d.results = nil
			d.err = fmt.Errorf("adapter panic: %v", r)
		}
		d.duration = time.Since(start)
		done <- d
	}()

	actx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	d.results, d.err = a.Search(actx, q)
}

func (f *FanOut) record(
	a driven.SourceAdapter, d adapterDone, results [][]domain.SearchResult, outcomes []domain.SourceOutcome,
) {
	o := &outcomes[d.idx]
	o.Duration = d.duration
	o.Err = nil

	switch {
	case errors.Is(d.err, domain.ErrSkipped):
		o.Skipped = true
		logger.Debug("%s: skipped (%s)", a.Name(), d.duration.Round(time.Millisecond))
	case d.err != nil:
		o.Err = d.err
		logger.Warn("%s: %v", a.Name(), d.err)
	default:
		results[d.idx] = d.results
		o.Count = len(d.results)
		logger.Debug("%s: %d results (%s)", a.Name(), o.Count, d.duration.Round(time.Millisecond))
	}
}

func (f *FanOut) logAbandoned(outcomes []domain.SourceOutcome) {
	for _, o := range outcomes {
		if errors.Is(o.Err, errAbandoned) {
			logger.Warn("%s: %v", o.Source, o.Err)
		}
	}
}

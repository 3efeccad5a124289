package sim

import (
	"context"
	"log/slog"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/scene"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs one Runner per seed in [seedStart, seedStart+numRuns).
type Ensemble struct {
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
	limit      int
	log        *slog.Logger
}

// NewEnsemble returns an ensemble. newMetrics is called once per run, since
// metrics hold per-run state; it may be nil.
func NewEnsemble(numRuns int, seedStart int64, newMetrics func() []Metric, logger *slog.Logger) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics, log: logger}
}

// SetLimit bounds the number of concurrent runs; zero or less means no limit.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

// Run returns results indexed by run. The first failing run cancels the rest.
func (e *Ensemble) Run(ctx context.Context, cfg *config.Config, payloads []scene.Payload) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			cfgCopy := *cfg
			cfgCopy.Seed = e.seedStart + int64(i)

			runner := New(e.log)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					runner.AddMetric(m)
				}
			}

			res, err := runner.Run(ctx, &cfgCopy, payloads)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

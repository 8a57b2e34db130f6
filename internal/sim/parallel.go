package sim

import (
	"context"
	"runtime"
	"sync"
)

// Ensemble runs the same configuration across consecutive seeds, one
// goroutine per run. Each run owns its own System built by the factory,
// so no simulation state is shared.
type Ensemble struct {
	factory   func(seed int64) System
	numRuns   int
	seedStart int64
	metrics   []func() Metric
}

func NewEnsemble(factory func(seed int64) System, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		factory:   factory,
		numRuns:   numRuns,
		seedStart: seedStart,
		metrics:   make([]func() Metric, 0),
	}
}

// AddMetric registers a metric constructor invoked once per run.
func (e *Ensemble) AddMetric(newMetric func() Metric) {
	e.metrics = append(e.metrics, newMetric)
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			r := NewRunner(e.factory(cfgCopy.Seed))
			for _, newMetric := range e.metrics {
				r.AddMetric(newMetric())
			}

			results[idx], errs[idx] = r.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// ParallelFor executes fn over disjoint chunks of [0, n). Callers must
// ensure fn writes only to slots within its own range; reads may come
// from shared immutable data only.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.NumCPU()
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

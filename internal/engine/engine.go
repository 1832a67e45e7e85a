// Package engine runs record generation at batch scale. Records are pure
// functions of (root seed, record index), so the engine can fan work out to
// any number of workers and still emit the byte-identical sequence a
// sequential run would produce.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"quotesynth/internal/calibration"
	"quotesynth/internal/generate"
	"quotesynth/internal/metrics"
	"quotesynth/internal/randstream"
	"quotesynth/pkg/quote"
)

// Engine generates quote records from a calibration set. It is safe for
// concurrent use; all mutable state lives in per-call stream derivations.
type Engine struct {
	tables    *calibration.Set
	recorder  metrics.Recorder
	reference time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder routes operation metrics to r instead of discarding them.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithReference pins the reference date all record dates derive from. The
// zero time keeps the default anchor.
func WithReference(t time.Time) Option {
	return func(e *Engine) { e.reference = t }
}

// New builds an engine over the given calibration set.
func New(tables *calibration.Set, opts ...Option) *Engine {
	e := &Engine{
		tables:   tables,
		recorder: metrics.NopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reference returns the engine's reference time (the default anchor when
// none was configured).
func (e *Engine) Reference() time.Time {
	if e.reference.IsZero() {
		return generate.DefaultReference
	}
	return e.reference
}

func (e *Engine) env(seed uint64) *generate.Env {
	return generate.NewEnv(e.tables, randstream.NewManager(seed), e.reference)
}

// Generate produces the single record at index for the given root seed.
func (e *Engine) Generate(ctx context.Context, seed, index uint64) (quote.Quote, error) {
	if err := ctx.Err(); err != nil {
		return quote.Quote{}, err
	}
	start := time.Now()
	q, err := generate.Record(e.env(seed), index)
	e.recorder.Observe(ctx, "generate", err == nil, time.Since(start))
	return q, err
}

// Batch generates records 0..n-1 sequentially and returns them all. Callers
// that do not need the full slice in memory should use Stream.
func (e *Engine) Batch(ctx context.Context, seed uint64, n int) ([]quote.Quote, error) {
	if n < 0 {
		return nil, fmt.Errorf("engine: record count %d is negative", n)
	}
	start := time.Now()
	env := e.env(seed)
	out := make([]quote.Quote, 0, n)
	var err error
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		var q quote.Quote
		if q, err = generate.Record(env, uint64(i)); err != nil {
			break
		}
		out = append(out, q)
	}
	e.recorder.Observe(ctx, "batch", err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}
	return out, nil
}

type indexedQuote struct {
	index uint64
	quote quote.Quote
}

// Stream generates records 0..n-1 across the given number of workers and
// calls emit once per record in strict index order. Each worker owns whole
// records; a reorder buffer between workers and emit restores sequence, so
// output is identical for every worker count. The first failure — generation
// error or emit error — cancels all workers and is returned.
func (e *Engine) Stream(ctx context.Context, seed uint64, n, workers int, emit func(quote.Quote) error) error {
	if n < 0 {
		return fmt.Errorf("engine: record count %d is negative", n)
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	start := time.Now()
	err := e.stream(ctx, seed, n, workers, emit)
	e.recorder.Observe(ctx, "stream", err == nil, time.Since(start))
	return err
}

func (e *Engine) stream(ctx context.Context, seed uint64, n, workers int, emit func(quote.Quote) error) error {
	env := e.env(seed)

	if workers == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			q, err := generate.Record(env, uint64(i))
			if err != nil {
				return err
			}
			if err := emit(q); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	indices := make(chan uint64)
	results := make(chan indexedQuote, workers)

	g.Go(func() error {
		defer close(indices)
		for i := uint64(0); i < uint64(n); i++ {
			select {
			case indices <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var running sync.WaitGroup
	running.Add(workers)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			defer running.Done()
			for idx := range indices {
				q, err := generate.Record(env, idx)
				if err != nil {
					return err
				}
				select {
				case results <- indexedQuote{index: idx, quote: q}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		running.Wait()
		close(results)
	}()

	g.Go(func() error {
		pending := make(map[uint64]quote.Quote, workers)
		next := uint64(0)
		for r := range results {
			pending[r.index] = r.quote
			for {
				q, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := emit(q); err != nil {
					return err
				}
				next++
			}
		}
		return nil
	})

	return g.Wait()
}

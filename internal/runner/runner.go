// Package runner orchestrates a full analysis: open the event store,
// assemble the admission chain, derivation pipeline and aggregator
// from configuration, fan the event id range out over workers with
// private accumulators, merge the partials deterministically and write
// the histogram container.
package runner

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"necana/internal/agg"
	"necana/internal/config"
	"necana/internal/dataset"
	"necana/internal/event"
	"necana/internal/writer"
)

// Summary reports the survivor statistics of a completed run. Cuts
// are silent per event; these aggregates are the only trace they
// leave.
type Summary struct {
	RunID     string
	Events    int64
	Survivors int64
	Fills     int64
	Output    string
	Duration  time.Duration
}

// Runner executes runs for one configuration.
type Runner struct {
	cfg config.Config
	log *zap.Logger
}

// New returns a runner. The config must already be validated.
func New(cfg config.Config, log *zap.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run processes the whole dataset once. Setup errors (unreadable or
// empty dataset, unwritable output, misconfigured booking or
// pipeline) surface before any event is processed; an aborted run
// leaves no output artifact.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	start := time.Now()
	log := r.log.With(zap.String("run_id", runID))
	log.Info("starting NEC calculation", zap.String("input", r.cfg.Input))

	reader, err := dataset.Open(r.cfg.Input)
	if err != nil {
		return Summary{}, err
	}
	defer reader.Close()

	total, err := reader.Count(ctx)
	if err != nil {
		return Summary{}, err
	}
	if total == 0 {
		return Summary{}, fmt.Errorf("dataset %q: %w", r.cfg.Input, dataset.ErrNoEvents)
	}
	lo, hi, err := reader.IDRange(ctx)
	if err != nil {
		return Summary{}, err
	}
	log.Info("opened event store", zap.Int64("events", total))

	out, err := writer.Create(r.cfg.Output)
	if err != nil {
		return Summary{}, err
	}

	_, cat, err := bookHistograms()
	if err != nil {
		out.Discard()
		return Summary{}, err
	}
	chain := buildChain(r.cfg)
	pipe, err := buildPipeline(r.cfg)
	if err != nil {
		out.Discard()
		return Summary{}, err
	}
	master, err := agg.New(cat, defaultBindings())
	if err != nil {
		out.Discard()
		return Summary{}, err
	}
	log.Info("defined histograms", zap.Int("count", len(master.Snapshots())))

	parts := splitRange(lo, hi, r.cfg.Workers)
	partials := make([]*agg.Aggregator, len(parts))
	var read, survived atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range parts {
		p := p
		local := master.Clone()
		partials[i] = local
		g.Go(func() error {
			return reader.Scan(gctx, p.lo, p.hi, func(ev *event.Event) error {
				read.Add(1)
				if !chain.Evaluate(ev) {
					return nil
				}
				if err := pipe.Run(ev); err != nil {
					return err
				}
				survived.Add(1)
				local.FillEvent(ev)
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		out.Discard()
		return Summary{}, err
	}

	// Merge order is fixed for reproducible logs; the content itself
	// is partition-order independent by bin-wise summation.
	for _, p := range partials {
		if err := master.Merge(p); err != nil {
			out.Discard()
			return Summary{}, err
		}
	}

	sum := Summary{
		RunID:     runID,
		Events:    read.Load(),
		Survivors: survived.Load(),
		Fills:     master.Entries(),
		Output:    r.cfg.Output,
	}
	err = out.Write(writer.Container{
		Header: writer.Header{
			RunID:     runID,
			Input:     r.cfg.Input,
			Events:    sum.Events,
			Survivors: sum.Survivors,
			CreatedAt: time.Now().UTC(),
		},
		Histograms: master.Snapshots(),
	})
	if err != nil {
		return Summary{}, err
	}

	sum.Duration = time.Since(start)
	log.Info("NEC calculation finished",
		zap.Int64("events", sum.Events),
		zap.Int64("survivors", sum.Survivors),
		zap.Int64("fills", sum.Fills),
		zap.String("output", sum.Output),
		zap.Duration("duration", sum.Duration),
	)
	return sum, nil
}

type span struct {
	lo, hi int64
}

// splitRange cuts [lo, hi] into at most n contiguous, non-empty,
// non-overlapping spans covering the whole range.
func splitRange(lo, hi int64, n int) []span {
	if n < 1 {
		n = 1
	}
	count := hi - lo + 1
	if int64(n) > count {
		n = int(count)
	}
	spans := make([]span, 0, n)
	step := count / int64(n)
	rem := count % int64(n)
	next := lo
	for i := 0; i < n; i++ {
		size := step
		if int64(i) < rem {
			size++
		}
		spans = append(spans, span{lo: next, hi: next + size - 1})
		next += size
	}
	return spans
}

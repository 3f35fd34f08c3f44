package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/errcorpus/internal/logger"
)

// Ensure FleetOrchestrator implements the interface.
var _ driving.FleetCollector = (*FleetOrchestrator)(nil)

// SliceReporter is told about every slice as soon as it finishes.
// result is nil when err is not.
type SliceReporter func(label string, result *driving.SliceResult, err error)

// FleetOrchestrator collects every slice of a corpus in parallel.
// Each worker owns the database of the slice it collects; nothing is shared.
type FleetOrchestrator struct {
	navigator driven.CorpusNavigator
	collector driving.Collector
	jobs      int
	report    SliceReporter
}

// FleetOption configures a FleetOrchestrator.
type FleetOption func(*FleetOrchestrator)

// WithJobs bounds the number of slices collected at once.
// jobs <= 0 uses runtime.GOMAXPROCS(0).
func WithJobs(jobs int) FleetOption {
	return func(o *FleetOrchestrator) {
		o.jobs = jobs
	}
}

// WithReporter sets a callback invoked as each slice finishes.
// Calls are serialised.
func WithReporter(report SliceReporter) FleetOption {
	return func(o *FleetOrchestrator) {
		o.report = report
	}
}

// NewFleetOrchestrator creates a fleet orchestrator.
func NewFleetOrchestrator(navigator driven.CorpusNavigator, collector driving.Collector, opts ...FleetOption) *FleetOrchestrator {
	o := &FleetOrchestrator{
		navigator: navigator,
		collector: collector,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.jobs <= 0 {
		o.jobs = runtime.GOMAXPROCS(0)
	}
	return o
}

// Jobs returns the worker limit.
func (o *FleetOrchestrator) Jobs() int {
	return o.jobs
}

// CollectAll collects every slice under the corpus root.
func (o *FleetOrchestrator) CollectAll(ctx context.Context) (*driving.FleetResult, error) {
	slices, err := o.navigator.Slices()
	if err != nil {
		return nil, fmt.Errorf("list slices: %w", err)
	}
	return o.Collect(ctx, slices)
}

// Collect collects the given slices with at most Jobs workers.
// A failing slice does not stop the others. The result lists every slice
// that succeeded; the error joins the failures, ordered by label.
func (o *FleetOrchestrator) Collect(ctx context.Context, slices []domain.Slice) (*driving.FleetResult, error) {
	result := &driving.FleetResult{
		RunID:  uuid.NewString(),
		Failed: make(map[string]error),
	}
	log := logger.L().With(zap.String("run", result.RunID))
	log.Info("collecting slices", zap.Int("slices", len(slices)), zap.Int("jobs", o.jobs))

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(o.jobs)

	for _, slice := range slices {
		g.Go(func() error {
			res, err := o.collector.Collect(ctx, slice)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[slice.Label] = err
				log.Warn("slice failed", zap.String("slice", slice.Label), zap.Error(err))
			} else {
				result.Slices = append(result.Slices, *res)
				log.Debug("slice collected",
					zap.String("slice", slice.Label),
					zap.Int("diagnostics", res.Diagnostics),
					zap.Duration("took", res.Duration))
			}
			if o.report != nil {
				o.report(slice.Label, res, err)
			}
			// Failures are collected, not propagated, so siblings keep running.
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Slices, func(i, j int) bool {
		return result.Slices[i].Slice < result.Slices[j].Slice
	})
	log.Info("collection finished",
		zap.Int("succeeded", len(result.Slices)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("diagnostics", result.Diagnostics()))

	if len(result.Failed) == 0 {
		return result, nil
	}

	labels := make([]string, 0, len(result.Failed))
	for label := range result.Failed {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	errs := make([]error, 0, len(labels))
	for _, label := range labels {
		errs = append(errs, fmt.Errorf("slice %s: %w", label, result.Failed[label]))
	}
	return result, errors.Join(errs...)
}

package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/errcorpus/internal/logger"
)

// DefaultSettleDelay is how long a new slice must stay quiet before it is
// collected.
const DefaultSettleDelay = 2 * time.Second

// SliceWatcher collects slices as they appear under the corpus root.
// Slices that already exist when watching starts are left alone.
type SliceWatcher struct {
	navigator driven.CorpusNavigator
	collector driving.Collector
	settle    time.Duration
	report    SliceReporter
}

// NewSliceWatcher creates a watcher. settle <= 0 uses DefaultSettleDelay.
func NewSliceWatcher(
	navigator driven.CorpusNavigator,
	collector driving.Collector,
	settle time.Duration,
	report SliceReporter,
) *SliceWatcher {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &SliceWatcher{
		navigator: navigator,
		collector: collector,
		settle:    settle,
		report:    report,
	}
}

// Watch blocks until ctx is cancelled, collecting each slice directory
// created under the root once no new event for it has arrived for the
// settle delay. Slices are collected one at a time.
func (w *SliceWatcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.navigator.Root()); err != nil {
		return fmt.Errorf("watch %s: %w", w.navigator.Root(), err)
	}
	logger.Info("watching %s for new slices", w.navigator.Root())

	done := make(chan struct{})
	defer close(done)

	ready := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			label, ok := domain.SliceLabel(filepath.Base(event.Name))
			if !ok {
				continue
			}
			if t, ok := timers[label]; ok {
				// A timer that already fired is delivering; leave it be.
				if t.Stop() {
					t.Reset(w.settle)
				}
				continue
			}
			timers[label] = time.AfterFunc(w.settle, func() {
				select {
				case ready <- label:
				case <-done:
				}
			})

		case label := <-ready:
			delete(timers, label)
			w.collect(ctx, label)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func (w *SliceWatcher) collect(ctx context.Context, label string) {
	slice, err := w.navigator.SliceByLabel(label)
	if err != nil {
		logger.Warn("Skipping slice %s: %v", label, err)
		w.notify(label, nil, err)
		return
	}

	result, err := w.collector.Collect(ctx, slice)
	if err != nil {
		logger.Warn("Collecting slice %s failed: %v", label, err)
	} else {
		logger.Info("collected slice %s: %d diagnostics", label, result.Diagnostics)
	}
	w.notify(label, result, err)
}

func (w *SliceWatcher) notify(label string, result *driving.SliceResult, err error) {
	if w.report != nil {
		w.report(label, result, err)
	}
}

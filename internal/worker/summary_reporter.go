package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

// CollectionsFacade exposes the subset of application functionality required by the reporter.
type CollectionsFacade interface {
	PendingSummary(ctx context.Context) (model.PendingSummary, error)
}

// SummaryReporter periodically recomputes the outstanding collections figure
// and emits it to the log. It only reads; the directory is never mutated from
// here.
type SummaryReporter struct {
	facade   CollectionsFacade
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSummaryReporter constructs the background reporter.
func NewSummaryReporter(facade CollectionsFacade, interval time.Duration, logger *slog.Logger) *SummaryReporter {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SummaryReporter{
		facade:   facade,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background reporting.
func (r *SummaryReporter) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(runCtx)
}

// Stop waits for the reporting loop to finish.
func (r *SummaryReporter) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *SummaryReporter) run(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.report(ctx)
		}
	}
}

func (r *SummaryReporter) report(ctx context.Context) {
	summary, err := r.facade.PendingSummary(ctx)
	if err != nil {
		r.logger.Error("pending summary failed", slog.String("error", err.Error()))
		return
	}
	r.logger.Info("outstanding collections",
		slog.Int("pending_count", summary.Count),
		slog.String("total_outstanding", summary.TotalOutstanding.StringFixed(2)),
	)
}

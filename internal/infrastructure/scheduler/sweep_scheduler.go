// Package scheduler runs the periodic maintenance sweeps: flagging
// overdue invoices, flagging missed project renewals, and pruning old
// activity log entries.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	invoiceapp "github.com/coldpitch/backend/internal/application/invoice"
	"github.com/coldpitch/backend/internal/infrastructure/config"
)

const (
	defaultSweepInterval     = time.Hour
	defaultActivityRetention = 90 * 24 * time.Hour
	sweepTimeout             = 5 * time.Minute
)

// InvoiceSweeper flags unpaid invoices past their due date
type InvoiceSweeper interface {
	SweepOverdue(ctx context.Context, asOf time.Time) (*invoiceapp.OverdueSweepResult, error)
}

// RenewalSweeper flags active projects whose renewal date has passed
type RenewalSweeper interface {
	SweepOverdueRenewals(ctx context.Context, asOf time.Time) (int, error)
}

// ActivityPruner removes audit entries past the retention cutoff
type ActivityPruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SweepScheduler runs all maintenance sweeps on a fixed interval.
// Each sweep failure is logged and the remaining sweeps still run.
type SweepScheduler struct {
	invoices  InvoiceSweeper
	renewals  RenewalSweeper
	activity  ActivityPruner
	interval  time.Duration
	retention time.Duration
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSweepScheduler creates a sweep scheduler from jobs configuration.
// Any of the sweep collaborators may be nil; nil sweeps are skipped.
func NewSweepScheduler(
	invoices InvoiceSweeper,
	renewals RenewalSweeper,
	activity ActivityPruner,
	cfg config.JobsConfig,
	logger *zap.Logger,
) *SweepScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	retention := cfg.ActivityRetention
	if retention <= 0 {
		retention = defaultActivityRetention
	}

	return &SweepScheduler{
		invoices:  invoices,
		renewals:  renewals,
		activity:  activity,
		interval:  interval,
		retention: retention,
		logger:    logger.Named("scheduler"),
	}
}

// Start launches the sweep loop. The first sweep runs immediately so
// overdue state converges right after a restart.
func (s *SweepScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Sweep scheduler started",
		zap.Duration("interval", s.interval),
		zap.Duration("activity_retention", s.retention))
}

// Stop cancels the sweep loop and waits for an in-flight sweep to
// finish, up to the given context's deadline.
func (s *SweepScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sweep scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SweepScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	s.sweepAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepAll(ctx)
		}
	}
}

// sweepAll runs one round of every configured sweep
func (s *SweepScheduler) sweepAll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	now := time.Now()

	if s.invoices != nil {
		if result, err := s.invoices.SweepOverdue(ctx, now); err != nil {
			s.logger.Error("Overdue invoice sweep failed", zap.Error(err))
		} else if result.Flagged > 0 {
			s.logger.Info("Flagged overdue invoices",
				zap.Int("count", result.Flagged),
				zap.Strings("numbers", result.Numbers))
		}
	}

	if s.renewals != nil {
		if flagged, err := s.renewals.SweepOverdueRenewals(ctx, now); err != nil {
			s.logger.Error("Renewal sweep failed", zap.Error(err))
		} else if flagged > 0 {
			s.logger.Info("Flagged overdue renewals", zap.Int("count", flagged))
		}
	}

	if s.activity != nil {
		cutoff := now.Add(-s.retention)
		if pruned, err := s.activity.PruneOlderThan(ctx, cutoff); err != nil {
			s.logger.Error("Activity log prune failed", zap.Error(err))
		} else if pruned > 0 {
			s.logger.Info("Pruned activity log entries", zap.Int64("count", pruned))
		}
	}
}

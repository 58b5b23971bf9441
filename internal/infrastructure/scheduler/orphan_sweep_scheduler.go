// Package scheduler runs the periodic background jobs of the service.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/badgekit/backend/internal/application/teardown"
	"github.com/badgekit/backend/internal/infrastructure/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper purges badges of uninstalled shops.
type Sweeper interface {
	Sweep(ctx context.Context) (teardown.SweepReport, error)
}

// OrphanSweepScheduler runs the orphan sweep on a cron schedule. Runs never
// overlap.
type OrphanSweepScheduler struct {
	config  config.SweeperConfig
	sweeper Sweeper
	logger  *zap.Logger

	mu        sync.Mutex
	cron      *cron.Cron
	baseCtx   context.Context
	cancel    context.CancelFunc
	running   sync.Mutex
	lastRunAt time.Time
	lastErr   error
}

// NewOrphanSweepScheduler creates a new OrphanSweepScheduler
func NewOrphanSweepScheduler(cfg config.SweeperConfig, sweeper Sweeper, logger *zap.Logger) *OrphanSweepScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &OrphanSweepScheduler{config: cfg, sweeper: sweeper, logger: logger}
}

// Start registers the job and starts the cron loop. It is a no-op when the
// scheduler is disabled or already started.
func (s *OrphanSweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Info("Orphan sweep scheduler disabled")
		return nil
	}
	if s.cron != nil {
		return nil
	}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger{s.logger}),
	)
	if _, err := c.AddFunc(s.config.Cron, s.runScheduled); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSchedule, s.config.Cron, err)
	}

	s.baseCtx, s.cancel = context.WithCancel(ctx)
	s.cron = c
	c.Start()

	s.logger.Info("Orphan sweep scheduler started", zap.String("cron", s.config.Cron))
	return nil
}

// Stop halts the cron loop and waits for a running sweep, up to ctx.
func (s *OrphanSweepScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c := s.cron
	cancel := s.cancel
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	done := c.Stop()
	select {
	case <-done.Done():
		cancel()
		s.logger.Info("Orphan sweep scheduler stopped")
		return nil
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

// RunNow performs one sweep immediately. It fails with ErrAlreadyRunning
// instead of waiting behind a sweep in progress.
func (s *OrphanSweepScheduler) RunNow(ctx context.Context) (teardown.SweepReport, error) {
	if !s.running.TryLock() {
		return teardown.SweepReport{}, ErrAlreadyRunning
	}
	defer s.running.Unlock()
	return s.run(ctx)
}

// LastRun returns when the last sweep finished and its error.
func (s *OrphanSweepScheduler) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt, s.lastErr
}

func (s *OrphanSweepScheduler) runScheduled() {
	if !s.running.TryLock() {
		s.logger.Warn("Previous orphan sweep still running, skipping")
		return
	}
	defer s.running.Unlock()

	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	_, _ = s.run(ctx)
}

func (s *OrphanSweepScheduler) run(ctx context.Context) (teardown.SweepReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	report, err := s.sweeper.Sweep(ctx)

	s.mu.Lock()
	s.lastRunAt = time.Now()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Orphan sweep failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return report, err
	}
	s.logger.Info("Orphan sweep completed",
		zap.Int("shops_scanned", report.ShopsScanned),
		zap.Int("shops_purged", report.ShopsPurged),
		zap.Int64("badges_deleted", report.BadgesDeleted),
		zap.Int("failures", report.Failures),
		zap.Duration("duration", time.Since(start)))
	return report, nil
}

// cronLogger routes robfig/cron's internal logging to zap.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}

// Package scheduler runs the ledger's periodic jobs inside the worker
// process.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/smallbiznis/railpos/internal/config"
	obsctx "github.com/smallbiznis/railpos/internal/observability/context"
	"github.com/smallbiznis/railpos/internal/observability/logger"
	"github.com/smallbiznis/railpos/internal/observability/metrics"
	"github.com/smallbiznis/railpos/internal/overdue"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("scheduler",
	fx.Provide(func(s *overdue.Sweeper) Sweeper { return s }),
	fx.Provide(New),
	fx.Invoke(register),
)

// Sweeper is the overdue reconciliation the scheduler drives.
type Sweeper interface {
	Today() time.Time
	Reconcile(ctx context.Context, today time.Time) (int, error)
}

type Params struct {
	fx.In

	Log     *zap.Logger
	Cfg     config.Config
	Sweeper Sweeper
	Metrics *metrics.JobMetrics `optional:"true"`
}

type Scheduler struct {
	log     *zap.Logger
	cfg     config.SchedulerConfig
	sweeper Sweeper
	metrics *metrics.JobMetrics

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(p Params) *Scheduler {
	cfg := p.Cfg.Scheduler
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	return &Scheduler{
		log:     p.Log.Named("scheduler"),
		cfg:     cfg,
		sweeper: p.Sweeper,
		metrics: p.Metrics,
	}
}

func register(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start(context.Background())
			return nil
		},
		OnStop: s.Stop,
	})
}

// Start launches the sweep loop. It is a no-op if the loop is running.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(obsctx.WithActor(ctx, "system", "scheduler"))
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)

	s.log.Info("scheduler started", zap.Duration("sweep_interval", s.cfg.SweepInterval))
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce performs a single overdue sweep for today.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	started := time.Now()
	record := s.metrics.Track(ctx, "overdue_sweep")
	today := s.sweeper.Today()
	changed, err := s.sweeper.Reconcile(ctx, today)
	record(err)
	if err != nil {
		logger.With(ctx, s.log).Error("overdue sweep failed", zap.Error(err))
		return changed, err
	}
	logger.With(ctx, s.log).Debug("overdue sweep finished",
		zap.Int("changed", changed),
		zap.String("today", today.Format(time.DateOnly)),
		zap.Duration("took", time.Since(started)),
	)
	return changed, nil
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	if s.cfg.RunOnStart {
		_, _ = s.RunOnce(ctx)
	}

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.RunOnce(ctx)
		}
	}
}

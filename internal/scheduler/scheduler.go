// Package scheduler replaces the platform's external cron trigger with
// an in-process ticker driving the deadline check.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cristianccgg/letranido-backend/config"
	"github.com/cristianccgg/letranido-backend/internal/service"
)

// Scheduler periodically invokes the contest deadline check. Runs are
// serialized: the next tick waits for the previous check to finish.
type Scheduler struct {
	cfg      *config.CheckerConfig
	deadline service.DeadlineService
	logger   *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

// New creates the deadline-check scheduler.
func New(cfg *config.CheckerConfig, deadline service.DeadlineService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		deadline: deadline,
		logger:   logger,
	}
}

// Start launches the ticker goroutine. No-op when the checker is
// disabled in config. An initial check runs immediately on start.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Info("deadline checker disabled")
		return
	}
	if s.stop != nil {
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.logger.Info("deadline checker started", zap.Duration("interval", s.cfg.Interval))

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		s.runOnce(ctx)
		for {
			select {
			case <-ticker.C:
				s.runOnce(ctx)
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the ticker and waits for an in-flight check to finish.
func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.logger.Info("deadline checker stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.deadline.CheckDeadlines(ctx)
	if err != nil {
		s.logger.Error("scheduled deadline check failed", zap.Error(err))
		return
	}

	if report.Total > 0 {
		s.logger.Info("scheduled deadline check completed",
			zap.Int("total", report.Total),
			zap.Int("sent", report.Sent),
			zap.Int("failed", report.Failed),
		)
	}
}

// Package scheduler wires up the cron job that periodically persists
// job expiry.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"shutterbid/internal/usecase"
)

// Sweeper runs the expiry pass on a fixed interval. The actual
// transition logic lives in the job usecase; this only drives it.
type Sweeper struct {
	cron   *cron.Cron
	jobs   usecase.JobUsecase
	logger *log.Logger
	spec   string
}

func NewSweeper(jobs usecase.JobUsecase, logger *log.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		cron:   cron.New(),
		jobs:   jobs,
		logger: logger,
		spec:   fmt.Sprintf("@every %s", interval),
	}
}

// Start registers the sweep and starts the scheduler. One sweep runs
// immediately so a restart doesn't leave overdue jobs open for a full
// interval.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logf("[Sweeper] started, interval %s", s.spec)

	go s.sweep(ctx)

	return nil
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
	s.logf("[Sweeper] stopped")
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.jobs.ExpireOverdue(ctx)
	if err != nil {
		s.logf("[Sweeper] expiry sweep failed after %d jobs: %v", n, err)
		return
	}
	if n > 0 {
		s.logf("[Sweeper] expired %d overdue jobs", n)
	}
}

func (s *Sweeper) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// Package worker hosts the scheduled background jobs
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/services"
)

// SummaryScheduler runs the daily digest on a cron schedule
type SummaryScheduler struct {
	summary  *services.SummaryService
	schedule string
	logger   *logger.Logger

	mu        sync.RWMutex
	cron      *cron.Cron
	isRunning bool
}

func NewSummaryScheduler(summary *services.SummaryService, schedule string, log *logger.Logger) *SummaryScheduler {
	return &SummaryScheduler{
		summary:  summary,
		schedule: schedule,
		logger:   log,
	}
}

// Start begins the cron schedule. Calling Start while running is a
// no-op.
func (s *SummaryScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		s.logger.Warn("Summary scheduler already running")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("Summary scheduler started: schedule=%q", s.schedule)
	return nil
}

// Stop halts the cron schedule and waits for an in-flight run
func (s *SummaryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.logger.Info("Summary scheduler stopped")
}

// IsRunning reports whether the scheduler is active
func (s *SummaryScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *SummaryScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.summary.Send(ctx, time.Time{}, time.Time{}); err != nil {
		s.logger.ErrorWithErr(err, "Scheduled daily summary failed")
	}
}

package scheduler

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper closes sessions that have been idle for longer than a cutoff
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// Scheduler handles periodic background jobs for the session store
type Scheduler struct {
	cron       *cron.Cron
	Sessions   Sweeper
	IdleAfter  time.Duration
	Schedule   string
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(sessions Sweeper, schedule string, idleAfter time.Duration) *Scheduler {
	// Heroku sets this to "web.1", "web.2", etc.
	instanceID := os.Getenv("DYNO")
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Sessions:   sessions,
		IdleAfter:  idleAfter,
		Schedule:   schedule,
		instanceID: instanceID,
	}
}

// Start registers the jobs and begins the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.Schedule, s.sweepIdleSessions); err != nil {
		zap.S().Errorw("failed to register session sweep job", "schedule", s.Schedule, "error", err)
		return fmt.Errorf("failed to register session sweep job: %w", err)
	}

	s.cron.Start()
	zap.S().Infow("Session scheduler started", "schedule", s.Schedule, "idleAfter", s.IdleAfter)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Session scheduler stopped")
}

// sweepIdleSessions closes abandoned sessions and releases their evidence
func (s *Scheduler) sweepIdleSessions() {
	start := time.Now()
	n := s.Sessions.Sweep(s.IdleAfter)
	if n == 0 {
		zap.S().Debugw("no idle sessions to sweep", "instance", s.instanceID)
		return
	}
	zap.S().Infow("Swept idle sessions",
		"instance", s.instanceID,
		"closed", n,
		"duration", time.Since(start),
	)
}

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/metrics"
	"github.com/robfig/cron/v3"
)

// SuspensionReinstater lifts suspensions whose end time has passed.
type SuspensionReinstater interface {
	ReinstateExpiredSuspensions(ctx context.Context, now time.Time) (int64, error)
}

// LogPruner deletes old system log rows.
type LogPruner func(ctx context.Context) (int64, error)

// Scheduler runs the periodic moderation housekeeping jobs.
type Scheduler struct {
	cron           *cron.Cron
	users          SuspensionReinstater
	pruneLogs      LogPruner
	suspensionSpec string
	cleanupSpec    string
	now            func() time.Time
}

func New(users SuspensionReinstater, pruneLogs LogPruner, suspensionSpec, cleanupSpec string) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithLocation(time.UTC)),
		users:          users,
		pruneLogs:      pruneLogs,
		suspensionSpec: suspensionSpec,
		cleanupSpec:    cleanupSpec,
		now:            time.Now,
	}
}

// Start registers the jobs and starts the cron engine. A bad spec is
// returned before anything runs.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.suspensionSpec, s.runSuspensionExpiry); err != nil {
		return fmt.Errorf("invalid suspension expiry schedule %q: %w", s.suspensionSpec, err)
	}
	if _, err := s.cron.AddFunc(s.cleanupSpec, s.runLogCleanup); err != nil {
		return fmt.Errorf("invalid log cleanup schedule %q: %w", s.cleanupSpec, err)
	}
	s.cron.Start()
	slog.Info("scheduler started", "suspension_spec", s.suspensionSpec, "cleanup_spec", s.cleanupSpec)
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) runSuspensionExpiry() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.users.ReinstateExpiredSuspensions(ctx, s.now())
	if err != nil {
		slog.Error("suspension expiry job failed", "error", err.Error())
		return
	}
	metrics.RecordSuspensionsLifted(n)
	if n > 0 {
		slog.Info("suspensions lifted", "users", n)
	}
}

func (s *Scheduler) runLogCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := s.pruneLogs(ctx)
	if err != nil {
		slog.Error("log cleanup failed", "error", err.Error())
		return
	}
	if n > 0 {
		slog.Info("log cleanup completed", "deleted", n)
	}
}

// Package scheduler runs the periodic leaderboard re-sync so the channel
// message stays current even when no report changes state for a while.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/usss-rp/portal/internal/config"
	"github.com/usss-rp/portal/internal/metrics"
	"github.com/usss-rp/portal/pkg/logger"
)

// Syncer pushes the leaderboard to the configured channel.
type Syncer interface {
	UpdateLeaderboard(ctx context.Context)
}

// Service schedules periodic leaderboard re-syncs.
type Service struct {
	cfg    *config.SchedulerConfig
	syncer Syncer
	log    *logger.Logger
	cron   *cron.Cron
}

// NewService creates a new scheduler service.
func NewService(cfg *config.SchedulerConfig, syncer Syncer, log *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		syncer: syncer,
		log:    log,
	}
}

// Start registers the re-sync job and starts the cron scheduler.
func (s *Service) Start() error {
	if !s.cfg.Enabled {
		s.log.Info().Msg("Scheduler is disabled in configuration")
		return nil
	}

	location, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.cfg.Timezone, err)
	}

	s.cron = cron.New(cron.WithLocation(location))

	if _, err := s.cron.AddFunc(s.cfg.Cron, func() {
		s.runSync(context.Background())
	}); err != nil {
		return fmt.Errorf("failed to register leaderboard sync job: %w", err)
	}

	s.cron.Start()

	entries := s.cron.Entries()
	nextRun := ""
	if len(entries) > 0 {
		nextRun = entries[0].Next.Format(time.RFC3339)
	}

	s.log.Info().
		Str("schedule", s.cfg.Cron).
		Str("timezone", s.cfg.Timezone).
		Str("next_run", nextRun).
		Msg("Scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running job.
func (s *Service) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.log.Info().Msg("Scheduler stopped")
	}
}

func (s *Service) runSync(ctx context.Context) {
	start := time.Now()

	s.log.Info().Msg("Running scheduled leaderboard sync")

	s.syncer.UpdateLeaderboard(ctx)

	metrics.RecordSchedulerSyncRun("success")

	s.log.Info().
		Dur("duration", time.Since(start)).
		Msg("Scheduled leaderboard sync completed")
}

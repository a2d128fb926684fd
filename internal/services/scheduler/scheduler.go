// Package scheduler runs the news importer on a cron schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/common"
	"github.com/ternarybob/cognita/internal/interfaces"
	"github.com/ternarybob/cognita/internal/models"
)

// importTimeout bounds a single scheduled import run.
const importTimeout = 10 * time.Minute

// Scheduler handles periodic news imports
type Scheduler struct {
	importer interfaces.ImportService
	cfg      common.ImporterConfig
	cron     *cron.Cron
	logger   arbor.ILogger
}

// NewScheduler creates a news import scheduler
func NewScheduler(importer interfaces.ImportService, cfg common.ImporterConfig, logger arbor.ILogger) *Scheduler {
	return &Scheduler{
		importer: importer,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}
}

// Start begins the scheduled imports
func (s *Scheduler) Start() error {
	schedule := s.cfg.Schedule
	if schedule == "" {
		// Default: every 6 hours
		schedule = "0 0 */6 * * *"
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runImport()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Msg("News import scheduler started")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("News import scheduler stopped")
}

// RunNow triggers an immediate import run
func (s *Scheduler) RunNow() {
	s.logger.Info().Msg("Triggering immediate import run")
	go s.runImport()
}

func (s *Scheduler) runImport() {
	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	s.logger.Info().Msg("Starting scheduled news import")

	result, err := s.importer.ImportNews(ctx, models.ImportOptions{
		Query:    s.cfg.Query,
		Category: s.cfg.Category,
		Limit:    s.cfg.Limit,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("Scheduled news import failed")
		return
	}

	s.logger.Info().
		Int("imported", result.ImportedCount).
		Str("message", result.Message).
		Msg("Scheduled news import completed")
}

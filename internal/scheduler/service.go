package scheduler

import (
	"context"
	"time"

	"github.com/lumenjournal/insights/internal/config"
	"github.com/lumenjournal/insights/internal/store"
	"github.com/lumenjournal/insights/internal/summary"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// runTimeout bounds each scheduled job.
const runTimeout = 10 * time.Minute

// Service runs the recurring jobs: the weekly summary sweep and the daily
// purge of expired prompts.
type Service struct {
	config      *config.Config
	summaries   *summary.Service
	maintenance store.Maintenance
	cron        *cron.Cron
}

// NewService creates a new scheduler service.
func NewService(cfg *config.Config, summaries *summary.Service, maintenance store.Maintenance) *Service {
	return &Service{
		config:      cfg,
		summaries:   summaries,
		maintenance: maintenance,
		cron:        cron.New(cron.WithSeconds()),
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Service) Start() error {
	// Weekly summary sweep on Sunday evening, server local time.
	summarySchedule := s.config.SummarySchedule
	if summarySchedule == "" {
		summarySchedule = "0 0 20 * * SUN"
	}
	_, err := s.cron.AddFunc(summarySchedule, func() {
		logrus.Info("Starting scheduled weekly summary run")
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := s.summaries.RunForAllUsers(ctx); err != nil {
			logrus.Errorf("Scheduled weekly summary run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	// Expired prompt purge, daily at 3 AM.
	_, err = s.cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		purged, err := s.maintenance.PurgeExpiredPrompts(ctx)
		if err != nil {
			logrus.Errorf("Expired prompt purge failed: %v", err)
			return
		}
		logrus.Infof("Purged %d expired prompts", purged)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Info("Scheduler started (weekly summary run plus daily prompt purge)")
	return nil
}

// Stop stops the scheduler.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}

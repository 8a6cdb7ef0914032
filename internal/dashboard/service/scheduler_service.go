package service

import (
	"context"
	"fmt"
	"time"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/pkg/logger"
	"golang-market-briefing/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs report delivery on a cron schedule.
type SchedulerService interface {
	Start(ctx context.Context) error
	RunOnce(ctx context.Context)
}

type schedulerService struct {
	cfg     *config.Config
	logger  *logger.Logger
	reports ReportService
	cron    *cron.Cron
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, reports ReportService) SchedulerService {
	return &schedulerService{
		cfg:     cfg,
		logger:  log,
		reports: reports,
		cron: cron.New(
			cron.WithLocation(utils.LoadLocation(cfg.Scheduler.TimeZone)),
			cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
}

// Start registers the delivery job and blocks until ctx is done.
func (s *schedulerService) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.Scheduler.Cron, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid scheduler cron %q: %w", s.cfg.Scheduler.Cron, err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", logger.StringField("cron", s.cfg.Scheduler.Cron), logger.StringField("time_zone", s.cfg.Scheduler.TimeZone))

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Scheduler service stopping")
	return nil
}

// RunOnce delivers one report, bounded by the scheduler timeout.
func (s *schedulerService) RunOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.Timeout)
	defer cancel()

	start := time.Now()
	err := utils.Safe(func() error {
		return s.reports.DeliverReport(runCtx)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Scheduled report delivery failed", logger.ErrorField(err))
		return
	}
	s.logger.InfoContext(ctx, "Scheduled report delivered", logger.DurationField("elapsed", time.Since(start)))
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/dto"
	"golang-market-briefing/internal/dashboard/repository"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/logger"
	"golang-market-briefing/pkg/telegram"
	"golang-market-briefing/pkg/utils"
)

var (
	// ErrBriefingDisabled is returned when the briefing feature is switched off.
	ErrBriefingDisabled = errors.New("briefing feature is disabled")
	// ErrHistoryDisabled is returned when no database is configured.
	ErrHistoryDisabled = errors.New("briefing history requires a database")
)

// ReportOptions overrides the configured snapshot window for one report.
type ReportOptions struct {
	Lookback         entity.Lookback
	Interval         entity.Interval
	ChangeMode       entity.ChangeMode
	IncludeHeadlines bool
}

// ReportService combines snapshot, headlines and briefing into one report.
type ReportService interface {
	GenerateReport(ctx context.Context, opts ReportOptions) (*dto.BriefingResponse, error)
	ListBriefings(ctx context.Context, limit int) ([]entity.Briefing, error)
	DeliverReport(ctx context.Context) error
	DefaultOptions() ReportOptions
}

type reportService struct {
	cfg       *config.Config
	logger    *logger.Logger
	spec      entity.TickerSpec
	snapshot  SnapshotService
	news      NewsService
	briefing  BriefingService
	briefings repository.BriefingRepository
	notifier  telegram.Notifier
	now       func() time.Time
}

// NewReportService creates a new ReportService. news, briefings and notifier
// are optional.
func NewReportService(
	cfg *config.Config,
	log *logger.Logger,
	spec entity.TickerSpec,
	snapshot SnapshotService,
	news NewsService,
	briefing BriefingService,
	briefings repository.BriefingRepository,
	notifier telegram.Notifier,
) ReportService {
	return &reportService{
		cfg:       cfg,
		logger:    log,
		spec:      spec,
		snapshot:  snapshot,
		news:      news,
		briefing:  briefing,
		briefings: briefings,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (s *reportService) DefaultOptions() ReportOptions {
	opts := ReportOptions{
		Lookback:         entity.Lookback(s.cfg.Snapshot.Lookback),
		Interval:         entity.Interval(s.cfg.Snapshot.Interval),
		IncludeHeadlines: s.cfg.Briefing.IncludeHeadlines && s.cfg.News.Enabled,
	}
	if s.snapshot != nil {
		opts.ChangeMode = s.snapshot.ChangeMode()
	}
	return opts
}

func (s *reportService) GenerateReport(ctx context.Context, opts ReportOptions) (*dto.BriefingResponse, error) {
	if !s.cfg.Briefing.Enabled {
		return nil, ErrBriefingDisabled
	}

	snapshot := s.snapshot
	if opts.ChangeMode != "" && opts.ChangeMode != snapshot.ChangeMode() {
		snapshot = snapshot.WithChangeMode(opts.ChangeMode)
	}
	records := snapshot.BuildSnapshot(ctx, s.spec, opts.Lookback, opts.Interval)
	summary := FormatSnapshotTable(records)

	var headlines []entity.NewsItem
	if opts.IncludeHeadlines && s.news != nil {
		items, err := s.news.GetHeadlines(ctx, "", 0)
		if err != nil {
			s.logger.WarnContext(ctx, "Continuing briefing without headlines", logger.ErrorField(err))
		} else {
			headlines = items
		}
	}

	result := s.briefing.GenerateBriefingWithHeadlines(ctx, summary, headlines, s.cfg.Gemini.APIKey)

	s.store(ctx, opts, records, headlines, result)

	return &dto.BriefingResponse{
		Briefing:  result,
		Snapshot:  records,
		Headlines: headlines,
	}, nil
}

func (s *reportService) store(ctx context.Context, opts ReportOptions, records []entity.QuoteRecord, headlines []entity.NewsItem, result entity.BriefingResult) {
	if s.briefings == nil {
		return
	}
	snapshotJSON, err := json.Marshal(records)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode snapshot", logger.ErrorField(err))
		return
	}
	titles := make([]string, 0, len(headlines))
	for _, h := range headlines {
		titles = append(titles, h.Title)
	}

	briefing := &entity.Briefing{
		Status:    string(result.Status),
		ModelUsed: result.ModelUsed,
		Text:      result.Text,
		Lookback:  string(opts.Lookback),
		Interval:  string(opts.Interval),
		Snapshot:  snapshotJSON,
		Headlines: titles,
	}
	if err := s.briefings.Create(ctx, briefing); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store briefing", logger.ErrorField(err))
		return
	}
	s.logger.InfoContext(ctx, "Briefing stored", logger.Field("briefing_id", briefing.ID))
}

func (s *reportService) ListBriefings(ctx context.Context, limit int) ([]entity.Briefing, error) {
	if s.briefings == nil {
		return nil, ErrHistoryDisabled
	}
	briefings, err := s.briefings.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list briefings: %w", err)
	}
	return briefings, nil
}

// DeliverReport generates a report with the configured options and sends it to Telegram.
func (s *reportService) DeliverReport(ctx context.Context) error {
	if s.notifier == nil {
		return errors.New("telegram notifier is not configured")
	}

	report, err := s.GenerateReport(ctx, s.DefaultOptions())
	if err != nil {
		return err
	}

	loc := utils.LoadLocation(s.cfg.Scheduler.TimeZone)
	if !report.Briefing.Succeeded() {
		msg := telegram.FormatErrorAlertMessage(s.now().In(loc), "briefing", report.Briefing.Text, report.Briefing.ModelUsed)
		if err := s.notifier.SendMessage(msg); err != nil {
			return fmt.Errorf("failed to send error alert: %w", err)
		}
		return fmt.Errorf("briefing failed: %s", report.Briefing.Text)
	}

	messages := telegram.FormatReportForTelegram(s.now().In(loc), report.Snapshot, report.Briefing)
	for i, msg := range messages {
		if err := s.notifier.SendMessage(msg); err != nil {
			return fmt.Errorf("failed to send report part %d/%d: %w", i+1, len(messages), err)
		}
	}
	s.logger.InfoContext(ctx, "Report delivered", logger.IntField("parts", len(messages)))
	return nil
}

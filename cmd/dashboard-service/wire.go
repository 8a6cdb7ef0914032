package main

import (
	"errors"
	"fmt"
	"time"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/repository"
	"golang-market-briefing/internal/dashboard/service"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/cache"
	"golang-market-briefing/pkg/logger"
	"golang-market-briefing/pkg/postgres"
	"golang-market-briefing/pkg/redis"
	"golang-market-briefing/pkg/telegram"
)

type app struct {
	cfg       *config.Config
	log       *logger.Logger
	spec      entity.TickerSpec
	snapshot  service.SnapshotService
	news      service.NewsService
	reports   service.ReportService
	scheduler service.SchedulerService
	closers   []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(cfg *config.Config, log *logger.Logger) (*app, error) {
	if cfg.Briefing.Enabled && cfg.Gemini.APIKey == "" {
		return nil, errors.New("briefing is enabled but gemini.api_key is not set")
	}

	a := &app{cfg: cfg, log: log}

	spec, err := cfg.LoadTickerSpec()
	if err != nil {
		return nil, err
	}
	a.spec = spec

	snapshotCache, err := a.newSnapshotCache()
	if err != nil {
		a.Close()
		return nil, err
	}

	var priceRepo repository.PriceHistoryRepository
	switch cfg.PriceProvider.Driver {
	case "finance-go":
		priceRepo = repository.NewFinanceGoRepository(log)
	default:
		priceRepo = repository.NewYahooFinanceRepository(cfg, log)
	}
	a.snapshot = service.NewSnapshotService(cfg, log, priceRepo, snapshotCache)

	if cfg.News.Enabled {
		var articles repository.ArticleRepository
		if cfg.News.FetchExcerpts {
			articles = repository.NewArticleRepository(cfg, log)
		}
		a.news = service.NewNewsService(cfg, log, repository.NewNewsRepository(cfg, log), articles)
	}

	catalog := repository.NewGeminiModelCatalog(cfg, log)
	briefing := service.NewBriefingService(
		cfg, log,
		service.NewModelResolver(cfg, log, catalog),
		repository.NewGeminiRepository(cfg, log),
		catalog,
	)

	var briefings repository.BriefingRepository
	if cfg.Database.Enabled() {
		db, err := postgres.NewDB(cfg.Postgres())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		briefings = repository.NewBriefingRepository(db.DB)
	}

	var notifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize telegram: %w", err)
		}
	}

	a.reports = service.NewReportService(cfg, log, spec, a.snapshot, a.news, briefing, briefings, notifier)
	a.scheduler = service.NewSchedulerService(cfg, log, a.reports)
	return a, nil
}

func (a *app) newSnapshotCache() (cache.Cache, error) {
	switch a.cfg.Snapshot.CacheDriver {
	case "none":
		return cache.NewNoop(), nil
	case "redis":
		client, err := redis.NewClient(redis.Config{
			Host:     a.cfg.Redis.Host,
			Port:     a.cfg.Redis.Port,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
			PoolSize: a.cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		return cache.NewRedis(client.Client, a.cfg.App.Name+":"), nil
	default:
		return cache.NewMemory(10 * time.Minute), nil
	}
}

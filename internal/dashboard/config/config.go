package config

import (
	"fmt"
	"os"
	"time"

	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/config"
	"golang-market-briefing/pkg/postgres"

	"gopkg.in/yaml.v3"
)

// Snapshot holds the quote snapshot settings.
type Snapshot struct {
	Lookback             string        `mapstructure:"lookback"`
	Interval             string        `mapstructure:"interval"`
	ChangeMode           string        `mapstructure:"change_mode"`
	CacheDriver          string        `mapstructure:"cache_driver"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
	MaxConcurrentFetches int           `mapstructure:"max_concurrent_fetches"`
	TickersFile          string        `mapstructure:"tickers_file"`
}

// PriceProvider selects the price history backend.
type PriceProvider struct {
	Driver string `mapstructure:"driver"`
}

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	APIVersion          string        `mapstructure:"api_version"`
	Resolution          string        `mapstructure:"resolution"`
	Models              []string      `mapstructure:"models"`
	LightweightPatterns []string      `mapstructure:"lightweight_patterns"`
	GeneralPatterns     []string      `mapstructure:"general_patterns"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// News holds the RSS news feed configuration.
type News struct {
	Enabled         bool          `mapstructure:"enabled"`
	FeedURL         string        `mapstructure:"feed_url"`
	Query           string        `mapstructure:"query"`
	MaxItems        int           `mapstructure:"max_items"`
	FetchExcerpts   bool          `mapstructure:"fetch_excerpts"`
	ExcerptMaxChars int           `mapstructure:"excerpt_max_chars"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Briefing holds the briefing feature switches.
type Briefing struct {
	Enabled          bool `mapstructure:"enabled"`
	IncludeHeadlines bool `mapstructure:"include_headlines"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Scheduler holds the cron schedule for report delivery.
type Scheduler struct {
	Enabled  bool          `mapstructure:"enabled"`
	Cron     string        `mapstructure:"cron"`
	TimeZone string        `mapstructure:"time_zone"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App           config.App      `mapstructure:"app"`
	Logger        config.Logger   `mapstructure:"logger"`
	Database      config.Database `mapstructure:"database"`
	Redis         config.Redis    `mapstructure:"redis"`
	API           config.API      `mapstructure:"api"`
	Snapshot      Snapshot        `mapstructure:"snapshot"`
	PriceProvider PriceProvider   `mapstructure:"price_provider"`
	YahooFinance  YahooFinance    `mapstructure:"yahoo_finance"`
	Gemini        Gemini          `mapstructure:"gemini"`
	News          News            `mapstructure:"news"`
	Briefing      Briefing        `mapstructure:"briefing"`
	Telegram      Telegram        `mapstructure:"telegram"`
	Scheduler     Scheduler       `mapstructure:"scheduler"`
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "market-briefing"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Encoding == "" {
		c.Logger.Encoding = "json"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}

	if c.Snapshot.Lookback == "" {
		c.Snapshot.Lookback = string(entity.Lookback5d)
	}
	if c.Snapshot.Interval == "" {
		c.Snapshot.Interval = string(entity.Interval1d)
	}
	if c.Snapshot.ChangeMode == "" {
		c.Snapshot.ChangeMode = string(entity.ChangeModeDaily)
	}
	if c.Snapshot.CacheDriver == "" {
		c.Snapshot.CacheDriver = "memory"
	}
	if c.Snapshot.CacheTTL == 0 {
		c.Snapshot.CacheTTL = time.Hour
	}
	if c.Snapshot.MaxConcurrentFetches <= 0 {
		c.Snapshot.MaxConcurrentFetches = 4
	}

	if c.PriceProvider.Driver == "" {
		c.PriceProvider.Driver = "yahoo"
	}
	if c.YahooFinance.BaseURL == "" {
		c.YahooFinance.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.YahooFinance.MaxRequestPerMinute <= 0 {
		c.YahooFinance.MaxRequestPerMinute = 120
	}
	if c.YahooFinance.Timeout == 0 {
		c.YahooFinance.Timeout = 10 * time.Second
	}

	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.Gemini.APIVersion == "" {
		c.Gemini.APIVersion = "v1beta"
	}
	if c.Gemini.Resolution == "" {
		c.Gemini.Resolution = "discovery"
	}
	if len(c.Gemini.Models) == 0 {
		c.Gemini.Models = []string{"gemini-1.5-flash"}
	}
	if len(c.Gemini.LightweightPatterns) == 0 {
		c.Gemini.LightweightPatterns = []string{"flash"}
	}
	if len(c.Gemini.GeneralPatterns) == 0 {
		c.Gemini.GeneralPatterns = []string{"pro"}
	}
	if c.Gemini.MaxRequestPerMinute <= 0 {
		c.Gemini.MaxRequestPerMinute = 10
	}
	if c.Gemini.Timeout == 0 {
		c.Gemini.Timeout = 90 * time.Second
	}

	if c.News.FeedURL == "" {
		c.News.FeedURL = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"
	}
	if c.News.Query == "" {
		c.News.Query = "global markets economy"
	}
	if c.News.MaxItems <= 0 {
		c.News.MaxItems = 10
	}
	if c.News.ExcerptMaxChars <= 0 {
		c.News.ExcerptMaxChars = 400
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 15 * time.Second
	}

	if c.Scheduler.Cron == "" {
		c.Scheduler.Cron = "0 8 * * 1-5"
	}
	if c.Scheduler.Timeout == 0 {
		c.Scheduler.Timeout = 5 * time.Minute
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := entity.ParseLookback(c.Snapshot.Lookback); err != nil {
		return fmt.Errorf("snapshot.lookback: %w", err)
	}
	if _, err := entity.ParseInterval(c.Snapshot.Interval); err != nil {
		return fmt.Errorf("snapshot.interval: %w", err)
	}
	if _, err := entity.ParseChangeMode(c.Snapshot.ChangeMode); err != nil {
		return fmt.Errorf("snapshot.change_mode: %w", err)
	}
	switch c.Snapshot.CacheDriver {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("snapshot.cache_driver: unsupported driver %q", c.Snapshot.CacheDriver)
	}
	switch c.PriceProvider.Driver {
	case "yahoo", "finance-go":
	default:
		return fmt.Errorf("price_provider.driver: unsupported driver %q", c.PriceProvider.Driver)
	}
	switch c.Gemini.Resolution {
	case "static", "discovery":
	default:
		return fmt.Errorf("gemini.resolution: unsupported strategy %q", c.Gemini.Resolution)
	}
	return nil
}

// Postgres maps the database section onto the connection settings.
func (c *Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		User:            c.Database.User,
		Password:        c.Database.Password,
		DBName:          c.Database.DBName,
		SSLMode:         c.Database.SSLMode,
		TimeZone:        c.Database.TimeZone,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		LogLevel:        c.Database.LogLevel,
	}
}

// LoadTickerSpec reads the ticker table from the configured YAML file, or
// returns the built-in table when no file is configured.
func (c *Config) LoadTickerSpec() (entity.TickerSpec, error) {
	if c.Snapshot.TickersFile == "" {
		return entity.DefaultTickerSpec(), nil
	}
	return LoadTickerSpec(c.Snapshot.TickersFile)
}

// LoadTickerSpec decodes a label: symbol mapping file.
func LoadTickerSpec(path string) (entity.TickerSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tickers file: %w", err)
	}
	var doc struct {
		Tickers entity.TickerSpec `yaml:"tickers"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tickers file %s: %w", path, err)
	}
	if len(doc.Tickers) == 0 {
		return nil, fmt.Errorf("tickers file %s defines no tickers", path)
	}
	return doc.Tickers, nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-market-briefing/internal/dashboard/config"
	delivery "golang-market-briefing/internal/dashboard/delivery/http"
	_ "golang-market-briefing/internal/dashboard/docs"
	"golang-market-briefing/pkg/logger"
	"golang-market-briefing/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard API and the report scheduler",
	Run:   runServe,
}

func loadApp() (*app, *logger.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	a, err := newApp(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize dashboard", logger.ErrorField(err))
	}
	return a, appLogger
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, appLogger := loadApp()
	defer func() { _ = appLogger.Sync() }()
	defer a.Close()
	cfg := a.cfg

	appLogger.Info("Starting Dashboard Service",
		logger.Field("name", cfg.App.Name),
		logger.IntField("tickers", len(a.spec)),
		logger.StringField("price_provider", cfg.PriceProvider.Driver),
	)

	if cfg.Scheduler.Enabled {
		utils.GoSafe(appLogger, func() {
			if err := a.scheduler.Start(ctx); err != nil {
				appLogger.Error("Scheduler failed to start", logger.ErrorField(err))
				stop()
			}
		})
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	apiV1 := e.Group("/api/v1")
	delivery.NewSnapshotHandler(cfg, a.spec, a.snapshot, appLogger).RegisterRoutes(apiV1.Group("/snapshot"))
	delivery.NewBriefingHandler(cfg, a.reports, appLogger).RegisterRoutes(apiV1.Group("/briefings"))
	delivery.NewNewsHandler(cfg, a.news, appLogger).RegisterRoutes(apiV1.Group("/news"))

	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Market Briefing API
// @version 1.0
// @description Market snapshot and generated briefing service.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "dashboard-service"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, newReportCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-service CLI: %s\n", err)
		os.Exit(1)
	}
}

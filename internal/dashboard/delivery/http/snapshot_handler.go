package http

import (
	"net/http"
	"time"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/dto"
	"golang-market-briefing/internal/dashboard/service"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SnapshotHandler handles HTTP requests for market snapshots.
type SnapshotHandler struct {
	cfg      *config.Config
	spec     entity.TickerSpec
	snapshot service.SnapshotService
	logger   *logger.Logger
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(cfg *config.Config, spec entity.TickerSpec, snapshot service.SnapshotService, logger *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{cfg: cfg, spec: spec, snapshot: snapshot, logger: logger}
}

// RegisterRoutes registers the snapshot routes to the Echo group.
func (h *SnapshotHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetSnapshot)
}

// GetSnapshot godoc
// @Summary Get the market snapshot
// @Description Quote table for the configured tickers. Tickers without data are returned with status "unavailable".
// @Tags snapshot
// @Produce  json
// @Param   range     query   string  false  "Lookback window (1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 3y, 5y)"
// @Param   interval  query   string  false  "Sampling interval (5m, 15m, 30m, 60m, 1d, 1wk, 1mo)"
// @Param   mode      query   string  false  "Change mode (daily, period)"
// @Success 200 {object} dto.SnapshotResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /snapshot [get]
func (h *SnapshotHandler) GetSnapshot(c echo.Context) error {
	var req dto.SnapshotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	lookback, interval, err := parseWindow(h.cfg, req.Lookback, req.Interval)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	svc := h.snapshot
	if req.ChangeMode != "" {
		mode, err := entity.ParseChangeMode(req.ChangeMode)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		svc = svc.WithChangeMode(mode)
	}

	records := svc.BuildSnapshot(c.Request().Context(), h.spec, lookback, interval)
	return c.JSON(http.StatusOK, dto.SnapshotResponse{
		Lookback:    string(lookback),
		Interval:    string(interval),
		ChangeMode:  string(svc.ChangeMode()),
		GeneratedAt: time.Now().UTC(),
		Quotes:      records,
	})
}

// parseWindow applies the configured defaults to empty values.
func parseWindow(cfg *config.Config, rawLookback, rawInterval string) (entity.Lookback, entity.Interval, error) {
	if rawLookback == "" {
		rawLookback = cfg.Snapshot.Lookback
	}
	if rawInterval == "" {
		rawInterval = cfg.Snapshot.Interval
	}
	lookback, err := entity.ParseLookback(rawLookback)
	if err != nil {
		return "", "", err
	}
	interval, err := entity.ParseInterval(rawInterval)
	if err != nil {
		return "", "", err
	}
	return lookback, interval, nil
}

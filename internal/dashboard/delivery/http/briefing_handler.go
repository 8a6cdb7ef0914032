package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/dto"
	"golang-market-briefing/internal/dashboard/service"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/logger"

	"github.com/labstack/echo/v4"
)

// BriefingHandler handles HTTP requests for market briefings.
type BriefingHandler struct {
	cfg     *config.Config
	reports service.ReportService
	logger  *logger.Logger
}

// NewBriefingHandler creates a new BriefingHandler.
func NewBriefingHandler(cfg *config.Config, reports service.ReportService, logger *logger.Logger) *BriefingHandler {
	return &BriefingHandler{cfg: cfg, reports: reports, logger: logger}
}

// RegisterRoutes registers the briefing routes to the Echo group.
func (h *BriefingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateBriefing)
	g.GET("", h.ListBriefings)
}

// CreateBriefing godoc
// @Summary Generate a market briefing
// @Description Builds a snapshot, optionally gathers headlines, and asks the model for a briefing. A failed briefing is returned with status 502 and the diagnostic in briefing.text.
// @Tags briefings
// @Accept  json
// @Produce  json
// @Param   request  body    dto.CreateBriefingRequest  false  "Window overrides"
// @Success 200 {object} dto.BriefingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.BriefingResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /briefings [post]
func (h *BriefingHandler) CreateBriefing(c echo.Context) error {
	var req dto.CreateBriefingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	opts := h.reports.DefaultOptions()
	lookback, interval, err := parseWindow(h.cfg, req.Lookback, req.Interval)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	opts.Lookback, opts.Interval = lookback, interval
	if req.ChangeMode != "" {
		mode, err := entity.ParseChangeMode(req.ChangeMode)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		opts.ChangeMode = mode
	}
	if req.IncludeHeadlines != nil {
		opts.IncludeHeadlines = *req.IncludeHeadlines && h.cfg.News.Enabled
	}

	report, err := h.reports.GenerateReport(c.Request().Context(), opts)
	if err != nil {
		if errors.Is(err, service.ErrBriefingDisabled) {
			return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	if !report.Briefing.Succeeded() {
		return c.JSON(http.StatusBadGateway, report)
	}
	return c.JSON(http.StatusOK, report)
}

// ListBriefings godoc
// @Summary List stored briefings
// @Description Newest first
// @Tags briefings
// @Produce  json
// @Param   limit  query   int  false  "Maximum number of briefings"  default(20)
// @Success 200 {object} dto.BriefingListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /briefings [get]
func (h *BriefingHandler) ListBriefings(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = n
	}

	briefings, err := h.reports.ListBriefings(c.Request().Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to list briefings", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto.BriefingListResponse{Briefings: briefings})
}

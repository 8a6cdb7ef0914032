package http

import (
	"net/http"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/dto"
	"golang-market-briefing/internal/dashboard/service"
	"golang-market-briefing/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NewsHandler handles HTTP requests for headlines.
type NewsHandler struct {
	cfg    *config.Config
	news   service.NewsService
	logger *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(cfg *config.Config, news service.NewsService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{cfg: cfg, news: news, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetNews)
}

// GetNews godoc
// @Summary Get latest headlines
// @Tags news
// @Produce  json
// @Param   q      query   string  false  "Search query"
// @Param   limit  query   int     false  "Maximum number of items"
// @Success 200 {object} dto.NewsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /news [get]
func (h *NewsHandler) GetNews(c echo.Context) error {
	if !h.cfg.News.Enabled || h.news == nil {
		return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "news feed is disabled"})
	}

	var req dto.NewsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}
	query := req.Query
	if query == "" {
		query = h.cfg.News.Query
	}

	items, err := h.news.GetHeadlines(c.Request().Context(), query, req.Limit)
	if err != nil {
		h.logger.Error("Failed to fetch headlines", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto.NewsResponse{Query: query, Items: items})
}

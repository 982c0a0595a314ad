package handlers

import (
	"net/http"

	"github.com/ecovibe/community/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AggregateHandler serves the trending hashtags and leaderboard aggregates
type AggregateHandler struct {
	trendingService    *services.TrendingService
	leaderboardService *services.LeaderboardService
}

// NewAggregateHandler creates a new AggregateHandler
func NewAggregateHandler(trendingService *services.TrendingService, leaderboardService *services.LeaderboardService) *AggregateHandler {
	return &AggregateHandler{trendingService: trendingService, leaderboardService: leaderboardService}
}

// RegisterAggregateRoutes registers trending and leaderboard routes
func (h *AggregateHandler) RegisterAggregateRoutes(g *echo.Group) {
	g.GET("/trending", h.GetTrending)
	g.GET("/leaderboard", h.GetLeaderboard)
}

// GetTrending returns the top hashtags of the trailing week
func (h *AggregateHandler) GetTrending(c echo.Context) error {
	tags, err := h.trendingService.ComputeTrending(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"trending": tags}})
}

// GetLeaderboard returns the top users by verified action count
func (h *AggregateHandler) GetLeaderboard(c echo.Context) error {
	entries, err := h.leaderboardService.ComputeLeaderboard(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"leaderboard": entries}})
}

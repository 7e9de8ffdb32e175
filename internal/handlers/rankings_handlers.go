package handlers

import (
	"net/http"
	"time"

	"investmap/internal/common"
	"investmap/internal/services"

	"github.com/labstack/echo/v4"
)

// RankingHandlers serves the ranked listing order and per-listing score
// breakdowns.
type RankingHandlers struct {
	startupService services.StartupService
}

func NewRankingHandlers(startupService services.StartupService) *RankingHandlers {
	return &RankingHandlers{startupService: startupService}
}

// GetRankings handles GET /rankings
func (h *RankingHandlers) GetRankings(c echo.Context) error {
	ctx := c.Request().Context()

	ranked, err := h.startupService.Ranked(ctx, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute rankings")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"rankings": ranked,
		"count":    len(ranked),
	})
}

// GetScore handles GET /rankings/:id and returns the full component
// breakdown for one listing.
func (h *RankingHandlers) GetScore(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	score, err := h.startupService.Score(ctx, id, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Startup not found")
	}
	return c.JSON(http.StatusOK, score)
}

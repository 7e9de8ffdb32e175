package handlers

import (
	"errors"
	"net/http"

	"investmap/internal/common"
	"investmap/internal/features"
	"investmap/internal/services"

	"github.com/labstack/echo/v4"
)

// FavoriteHandlers handles HTTP requests for investor favorites
type FavoriteHandlers struct {
	favoritesService services.FavoritesService
}

// NewFavoriteHandlers creates a new favorite handlers instance
func NewFavoriteHandlers(favoritesService services.FavoritesService) *FavoriteHandlers {
	return &FavoriteHandlers{favoritesService: favoritesService}
}

// ToggleFavorite handles POST /startups/:id/favorite
func (h *FavoriteHandlers) ToggleFavorite(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	startupID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	favorited, err := h.favoritesService.ToggleFavorite(ctx, userID, startupID)
	if err != nil {
		var denied *features.FeatureDeniedError
		if errors.As(err, &denied) {
			return echo.NewHTTPError(http.StatusForbidden, denied.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle favorite")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"startup_id": startupID.String(),
		"favorited":  favorited,
	})
}

// ListFavorites handles GET /favorites
func (h *FavoriteHandlers) ListFavorites(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	startupIDs, err := h.favoritesService.GetInvestorFavorites(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list favorites")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"startup_ids": startupIDs,
		"count":       len(startupIDs),
	})
}

// GetHeartCount handles GET /startups/:id/hearts
func (h *FavoriteHandlers) GetHeartCount(c echo.Context) error {
	ctx := c.Request().Context()

	startupID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.favoritesService.GetHeartCount(ctx, startupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get heart count")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"startup_id":  startupID.String(),
		"heart_count": count,
	})
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"investmap/internal/common"
	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SavedSearchHandlers handles HTTP requests for saved searches and the
// notifications they produce.
type SavedSearchHandlers struct {
	searchesRepo      repositories.SavedSearchesRepository
	notificationsRepo repositories.NotificationsRepository
}

// NewSavedSearchHandlers creates a new saved search handlers instance
func NewSavedSearchHandlers(
	searchesRepo repositories.SavedSearchesRepository,
	notificationsRepo repositories.NotificationsRepository,
) *SavedSearchHandlers {
	return &SavedSearchHandlers{
		searchesRepo:      searchesRepo,
		notificationsRepo: notificationsRepo,
	}
}

// CreateSavedSearch handles POST /saved-searches
func (h *SavedSearchHandlers) CreateSavedSearch(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req struct {
		Label         string                `json:"label"`
		Filters       models.StartupFilters `json:"filters"`
		AlertsEnabled bool                  `json:"alerts_enabled"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Label) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Label is required")
	}

	search := &models.SavedSearch{
		ID:             uuid.New(),
		InvestorUserID: userID,
		Label:          req.Label,
		Filters:        req.Filters,
		AlertsEnabled:  req.AlertsEnabled,
	}
	if err := h.searchesRepo.Create(ctx, search); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create saved search")
	}
	return c.JSON(http.StatusCreated, search)
}

// ListSavedSearches handles GET /saved-searches
func (h *SavedSearchHandlers) ListSavedSearches(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	searches, err := h.searchesRepo.ListForUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list saved searches")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"saved_searches": searches,
		"count":          len(searches),
	})
}

// UpdateSavedSearch handles PUT /saved-searches/:id
func (h *SavedSearchHandlers) UpdateSavedSearch(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	existing, err := h.searchesRepo.GetByID(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Saved search not found")
	}
	if existing.InvestorUserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Saved search belongs to another user")
	}

	var req struct {
		Label         string                `json:"label"`
		Filters       models.StartupFilters `json:"filters"`
		AlertsEnabled bool                  `json:"alerts_enabled"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Label) != "" {
		existing.Label = req.Label
	}
	existing.Filters = req.Filters
	existing.AlertsEnabled = req.AlertsEnabled

	if err := h.searchesRepo.Update(ctx, existing); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update saved search")
	}
	return c.JSON(http.StatusOK, existing)
}

// DeleteSavedSearch handles DELETE /saved-searches/:id
func (h *SavedSearchHandlers) DeleteSavedSearch(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.searchesRepo.Delete(ctx, id, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete saved search")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// ListNotifications handles GET /notifications
func (h *SavedSearchHandlers) ListNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	notifications, err := h.notificationsRepo.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list notifications")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead handles POST /notifications/:id/read
func (h *SavedSearchHandlers) MarkNotificationRead(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.notificationsRepo.MarkRead(ctx, id, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notification read")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "read"})
}

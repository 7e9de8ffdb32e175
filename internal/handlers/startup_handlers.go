package handlers

import (
	"net/http"
	"strconv"
	"time"

	"investmap/internal/common"
	"investmap/internal/config"
	"investmap/internal/models"
	"investmap/internal/services"

	"github.com/labstack/echo/v4"
)

// StartupHandlers handles HTTP requests for startup listings
type StartupHandlers struct {
	startupService services.StartupService
	deckService    services.DeckService
	storageCfg     config.StorageConfig
}

// NewStartupHandlers creates a new startup handlers instance
func NewStartupHandlers(
	startupService services.StartupService,
	deckService services.DeckService,
	storageCfg config.StorageConfig,
) *StartupHandlers {
	return &StartupHandlers{
		startupService: startupService,
		deckService:    deckService,
		storageCfg:     storageCfg,
	}
}

// RegisterStartup handles POST /startups
func (h *StartupHandlers) RegisterStartup(c echo.Context) error {
	ctx := c.Request().Context()

	var startup models.Startup
	if err := c.Bind(&startup); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.startupService.Register(ctx, &startup); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, &startup)
}

// GetStartup handles GET /startups/:id
func (h *StartupHandlers) GetStartup(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startup, err := h.startupService.Get(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Startup not found")
	}
	return c.JSON(http.StatusOK, startup)
}

// UpdateStartup handles PUT /startups/:id
func (h *StartupHandlers) UpdateStartup(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var startup models.Startup
	if err := c.Bind(&startup); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	startup.ID = id

	if err := h.startupService.UpdateProfile(ctx, &startup); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, &startup)
}

// ListStartups handles GET /startups
func (h *StartupHandlers) ListStartups(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	startups, err := h.startupService.Search(ctx, &models.StartupFilters{Limit: limit, Offset: offset})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list startups")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"startups": startups,
		"count":    len(startups),
	})
}

// SearchStartups handles POST /startups/search
func (h *StartupHandlers) SearchStartups(c echo.Context) error {
	ctx := c.Request().Context()

	var filters models.StartupFilters
	if err := c.Bind(&filters); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	filters.Limit, filters.Offset = common.ValidatePaginationParams(filters.Limit, filters.Offset)

	startups, err := h.startupService.Search(ctx, &filters)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Search failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"startups": startups,
		"count":    len(startups),
	})
}

// UploadDeck handles POST /startups/:id/deck
func (h *StartupHandlers) UploadDeck(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("deck")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Deck file is required")
	}
	maxSize := int64(h.storageCfg.MaxDeckSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Deck exceeds the maximum allowed size")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read upload")
	}
	defer src.Close()

	objectName, err := h.deckService.UploadDeck(ctx, id, src, file.Size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store deck")
	}
	if err := h.startupService.AttachDeck(ctx, id, objectName); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to attach deck to listing")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"object_name": objectName,
	})
}

// GetDeckURL handles GET /startups/:id/deck and returns a presigned
// download link.
func (h *StartupHandlers) GetDeckURL(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startup, err := h.startupService.Get(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Startup not found")
	}
	if startup.PitchDeckURL == nil || *startup.PitchDeckURL == "" {
		return echo.NewHTTPError(http.StatusNotFound, "No pitch deck uploaded for this startup")
	}

	expiry := time.Duration(h.storageCfg.PresignExpiryMinutes) * time.Minute
	url, err := h.deckService.GetPresignedDeckURL(*startup.PitchDeckURL, expiry)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate download link")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

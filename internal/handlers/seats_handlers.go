package handlers

import (
	"errors"
	"net/http"

	"investmap/internal/common"
	"investmap/internal/services"

	"github.com/labstack/echo/v4"
)

// SeatHandlers handles HTTP requests for seat management
type SeatHandlers struct {
	seatService services.SeatService
}

// NewSeatHandlers creates a new seat handlers instance
func NewSeatHandlers(seatService services.SeatService) *SeatHandlers {
	return &SeatHandlers{seatService: seatService}
}

// ActivateSeat handles POST /seats/activate
func (h *SeatHandlers) ActivateSeat(c echo.Context) error {
	ctx := c.Request().Context()

	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Organization not found")
	}

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	targetID, err := common.ValidateUUID(req.UserID, "user_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.seatService.ActivateSeat(ctx, actorID, targetID, orgID); err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrSeatLimitExceeded):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to activate seat")
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "activated",
		"user_id": targetID.String(),
	})
}

// DeactivateSeat handles POST /seats/deactivate
func (h *SeatHandlers) DeactivateSeat(c echo.Context) error {
	ctx := c.Request().Context()

	actorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Organization not found")
	}

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	targetID, err := common.ValidateUUID(req.UserID, "user_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.seatService.DeactivateSeat(ctx, actorID, targetID, orgID); err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to deactivate seat")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "deactivated",
		"user_id": targetID.String(),
	})
}

// GetSeatUsage handles GET /seats/usage
func (h *SeatHandlers) GetSeatUsage(c echo.Context) error {
	ctx := c.Request().Context()

	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Organization not found")
	}

	usage, err := h.seatService.GetSeatUsage(ctx, orgID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get seat usage")
	}
	return c.JSON(http.StatusOK, usage)
}

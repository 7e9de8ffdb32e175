package handlers

import (
	"net/http"
	"strconv"
	"time"

	"investmap/internal/common"
	"investmap/internal/models"
	"investmap/internal/repositories"
	"investmap/internal/services"

	"github.com/labstack/echo/v4"
)

// AuditLogHandlers handles HTTP requests for the audit trail. All
// endpoints are admin-only.
type AuditLogHandlers struct {
	auditService services.AuditService
	usersRepo    repositories.InvestorUsersRepository
}

// NewAuditLogHandlers creates a new audit log handlers instance
func NewAuditLogHandlers(auditService services.AuditService, usersRepo repositories.InvestorUsersRepository) *AuditLogHandlers {
	return &AuditLogHandlers{
		auditService: auditService,
		usersRepo:    usersRepo,
	}
}

func (h *AuditLogHandlers) requireAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := h.usersRepo.GetByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}
	if !user.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
	}
	return nil
}

// ListAuditLogs handles GET /audit-logs
func (h *AuditLogHandlers) ListAuditLogs(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	ctx := c.Request().Context()

	filters := &models.AuditLogFilters{}

	if actorStr := c.QueryParam("actor_id"); actorStr != "" {
		actorID, err := common.ValidateUUID(actorStr, "actor_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filters.ActorID = &actorID
	}
	if targetStr := c.QueryParam("target_id"); targetStr != "" {
		targetID, err := common.ValidateUUID(targetStr, "target_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filters.TargetID = &targetID
	}
	if action := c.QueryParam("action"); action != "" {
		filters.Action = &action
	}
	if startStr := c.QueryParam("start_date"); startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "start_date must be RFC3339")
		}
		filters.StartDate = &start
	}
	if endStr := c.QueryParam("end_date"); endStr != "" {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "end_date must be RFC3339")
		}
		filters.EndDate = &end
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	filters.Limit, filters.Offset = common.ValidatePaginationParams(limit, offset)

	logs, err := h.auditService.List(ctx, filters)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list audit logs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"audit_logs": logs,
		"count":      len(logs),
	})
}

// GetTargetHistory handles GET /audit-logs/target/:id
func (h *AuditLogHandlers) GetTargetHistory(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	ctx := c.Request().Context()

	targetID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	logs, err := h.auditService.GetTargetHistory(ctx, targetID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load audit history")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"audit_logs": logs,
		"count":      len(logs),
	})
}

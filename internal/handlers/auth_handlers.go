package handlers

import (
	"errors"
	"net/http"
	"strings"

	"investmap/internal/common"
	"investmap/internal/repositories"
	"investmap/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles HTTP requests for authentication
type AuthHandlers struct {
	authService services.AuthService
	usersRepo   repositories.InvestorUsersRepository
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, usersRepo repositories.InvestorUsersRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		usersRepo:   usersRepo,
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		OrganizationName string `json:"organization_name"`
		Email            string `json:"email"`
		Password         string `json:"password"`
		Seats            int    `json:"seats"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.OrganizationName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Organization name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	user, err := h.authService.Signup(ctx, req.OrganizationName, req.Email, req.Password, req.Seats)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password, c.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, services.ErrSeatNotActive):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrRateLimited):
			return echo.NewHTTPError(http.StatusTooManyRequests, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Login failed")
		}
	}

	return c.JSON(http.StatusOK, result)
}

// Logout handles POST /auth/logout
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.authService.Logout(ctx, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to log out")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.usersRepo.GetByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

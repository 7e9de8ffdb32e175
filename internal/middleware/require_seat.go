package middleware

import (
	"net/http"
	"strings"

	"investmap/internal/common"
	"investmap/internal/services"

	"github.com/labstack/echo/v4"
)

// SeatMiddleware rejects requests whose session is no longer valid: the
// token hash must match and the seat must still be active. A seat
// deactivated mid-session fails here on the next request.
type SeatMiddleware struct {
	sessions services.SessionMonitor
}

func NewSeatMiddleware(sessions services.SessionMonitor) *SeatMiddleware {
	return &SeatMiddleware{sessions: sessions}
}

func (m *SeatMiddleware) RequireActiveSeat() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			token := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
			valid, err := m.sessions.ValidateSession(ctx, userID, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Error validating session")
			}
			if !valid {
				return echo.NewHTTPError(http.StatusForbidden, "Seat is not active or session has been invalidated")
			}

			return next(c)
		}
	}
}

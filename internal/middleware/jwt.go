package middleware

import (
	"context"
	"net/http"
	"strings"

	"investmap/internal/common"
	"investmap/internal/repositories"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates bearer tokens and seeds the request context with
// the user and organization IDs. Tokens verify against the shared HS256
// secret, or against a hosted provider's JWKS when jwksURL is set.
func JWTMiddleware(usersRepo repositories.InvestorUsersRepository, jwtSecret, jwksURL string) (echo.MiddlewareFunc, error) {
	keyFn := func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}
	if jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{})
		if err != nil {
			return nil, err
		}
		keyFn = jwks.Keyfunc
	}

	mw := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			token, err := jwt.Parse(tokenString, keyFn)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}
			sub, ok := claims["sub"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing subject in token")
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid subject format")
			}

			user, err := usersRepo.GetByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, user.ID)
			ctx = context.WithValue(ctx, common.OrganizationIDKey, user.OrganizationID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
	return mw, nil
}

// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"

	"bootstrapper-server/models"
	"bootstrapper-server/storage"

	"github.com/labstack/echo/v4"
)

// APIKeyAuth authenticates every request by the X-API-Key header and charges
// it against the caller's daily call quota. Requests with a missing or
// unknown key are rejected with 401; requests over the daily limit with 429.
// The resolved user is stored in the request context for handlers.
func APIKeyAuth(store *storage.Store, dailyLimit int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := c.Logger()

			apiKey := c.Request().Header.Get("X-API-Key")
			if apiKey == "" {
				logger.Error("X-API-Key header missing.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Missing X-API-Key header",
				}
			}

			user, err := store.GetUserByAPIKey(c.Request().Context(), apiKey)
			if errors.Is(err, storage.ErrNotFound) {
				logger.Error("Unknown API key.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid API key",
				}
			}
			if err != nil {
				logger.Errorf("Failed to look up API key: %v", err)
				return echo.ErrInternalServerError
			}

			allowed, err := store.IncrementCallAndCheckLimit(c.Request().Context(), user.ID, dailyLimit)
			if err != nil {
				logger.Errorf("Failed to check daily call limit: %v", err)
				return echo.ErrInternalServerError
			}
			if !allowed {
				logger.Warnf("Daily API call limit reached for user %d.", user.ID)
				return &echo.HTTPError{
					Code:    http.StatusTooManyRequests,
					Message: "Daily API call limit exceeded",
				}
			}

			c.Set("user", user)
			return next(c)
		}
	}
}

// AuthenticatedUser returns the user resolved by APIKeyAuth for this
// request.
func AuthenticatedUser(c echo.Context) (*models.User, error) {
	user, ok := c.Get("user").(*models.User)
	if !ok {
		return nil, errors.New("no authenticated user found")
	}
	return user, nil
}

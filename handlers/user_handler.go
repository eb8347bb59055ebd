// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"

	"bootstrapper-server/crypto"
	"bootstrapper-server/models"
	"bootstrapper-server/storage"

	"github.com/labstack/echo/v4"
)

// RegisterUserHandler godoc
// @Summary      Register a new user
// @Description  Creates a free-tier account and returns its API key.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        registerUserRequest  body  RegisterUserRequest  true  "Registration payload"
// @Success      201 {object} RegisterUserResponse "User registered successfully"
// @Failure      400 {object} echo.HTTPError       "Bad request, missing required fields"
// @Failure      409 {object} echo.HTTPError       "Duplicate user"
// @Failure      500 {object} echo.HTTPError       "Internal server error"
// @Router       /users [post]
func (h *Handler) RegisterUserHandler(c echo.Context) error {
	logger := c.Logger()

	var req RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid register user request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Username == "" {
		logger.Error("Username is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "username field is required",
		}
	}
	if len(req.Username) > 50 {
		logger.Error("Username is too long.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "username must be at most 50 characters",
		}
	}
	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	apiKey := crypto.GenerateAPIKey()
	user, err := h.Store.CreateUser(c.Request().Context(), req.Username, req.Email, apiKey, models.FreeTier)
	if errors.Is(err, storage.ErrConstraintViolation) {
		logger.Errorf("Failed to create user: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "A user with these details already exists, please try again",
		}
	}
	if err != nil {
		logger.Errorf("Failed to create user: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User registered successfully")
	return c.JSON(http.StatusCreated, RegisterUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		APIKey:   user.APIKey,
		Tier:     string(user.Tier),
		Message:  "User registered successfully",
	})
}

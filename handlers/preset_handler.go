// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bootstrapper-server/middlewares"
	"bootstrapper-server/models"
	"bootstrapper-server/scaffold"
	"bootstrapper-server/storage"

	"github.com/labstack/echo/v4"
)

func presetDetails(preset *models.Preset) PresetDetails {
	return PresetDetails{
		ID:          preset.ID,
		Name:        preset.Name,
		Template:    preset.Template,
		GitInit:     preset.GitInit,
		UseVenv:     preset.UseVenv,
		LicenseType: preset.LicenseType,
		CreatedAt:   preset.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   preset.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func presetIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("preset_id"), 10, 32)
	if err != nil {
		return 0, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "preset_id must be a positive integer",
		}
	}
	return uint(id), nil
}

// CreatePresetHandler godoc
// @Summary      Create a preset
// @Description  Saves a reusable project-creation configuration for the caller.
// @Tags         presets
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key"
// @Param        createPresetRequest  body  CreatePresetRequest  true  "Preset payload"
// @Success      201 {object} PresetResponse "Preset created successfully"
// @Failure      400 {object} echo.HTTPError "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      403 {object} echo.HTTPError "Template not allowed for free tier"
// @Failure      429 {object} echo.HTTPError "Daily API call limit exceeded"
// @Router       /presets [post]
func (h *Handler) CreatePresetHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	var req CreatePresetRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create preset request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Name == "" {
		logger.Error("Preset name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}
	if req.Template == "" {
		logger.Error("Preset template is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "template field is required",
		}
	}
	if !scaffold.IsAllowed(req.Template) {
		logger.Errorf("Template %q not allowed for free tier.", req.Template)
		return &echo.HTTPError{
			Code:    http.StatusForbidden,
			Message: "Template not allowed for free tier",
		}
	}

	gitInit := req.GitInit != nil && *req.GitInit
	useVenv := req.UseVenv != nil && *req.UseVenv

	preset, err := h.Store.CreatePreset(c.Request().Context(), user.ID, req.Name, req.Template, gitInit, useVenv, req.LicenseType)
	if err != nil {
		logger.Errorf("Failed to create preset: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Preset created successfully")
	return c.JSON(http.StatusCreated, PresetResponse{
		PresetDetails: presetDetails(preset),
		Message:       "Preset created successfully",
	})
}

// ListPresetsHandler godoc
// @Summary      List presets
// @Description  Retrieves all presets owned by the caller.
// @Tags         presets
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key"
// @Success      200 {object} PresetListResponse "Presets retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      429 {object} echo.HTTPError     "Daily API call limit exceeded"
// @Router       /presets [get]
func (h *Handler) ListPresetsHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	presets, err := h.Store.ListPresets(c.Request().Context(), user.ID)
	if err != nil {
		logger.Errorf("Failed to list presets: %v", err)
		return echo.ErrInternalServerError
	}

	data := make([]PresetDetails, 0, len(presets))
	for i := range presets {
		data = append(data, presetDetails(&presets[i]))
	}
	return c.JSON(http.StatusOK, PresetListResponse{
		Data:    data,
		Message: "Presets retrieved successfully",
	})
}

// GetPresetHandler godoc
// @Summary      Get a preset
// @Description  Retrieves a single preset owned by the caller.
// @Tags         presets
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key"
// @Param        preset_id  path    int     true  "Preset ID"
// @Success      200 {object} PresetResponse "Preset retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Preset not found"
// @Router       /presets/{preset_id} [get]
func (h *Handler) GetPresetHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	presetID, err := presetIDParam(c)
	if err != nil {
		return err
	}

	preset, err := h.Store.GetPreset(c.Request().Context(), user.ID, presetID)
	if errors.Is(err, storage.ErrNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Preset not found",
		}
	}
	if err != nil {
		logger.Errorf("Failed to get preset: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, PresetResponse{
		PresetDetails: presetDetails(preset),
		Message:       "Preset retrieved successfully",
	})
}

// UpdatePresetHandler godoc
// @Summary      Update a preset
// @Description  Applies a partial field set to a preset owned by the caller; omitted fields keep their prior values.
// @Tags         presets
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string               true  "API key"
// @Param        preset_id  path    int                  true  "Preset ID"
// @Param        updatePresetRequest  body  UpdatePresetRequest  true  "Fields to update"
// @Success      200 {object} PresetResponse "Preset updated successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      403 {object} echo.HTTPError "Template not allowed for free tier"
// @Failure      404 {object} echo.HTTPError "Preset not found"
// @Router       /presets/{preset_id} [put]
func (h *Handler) UpdatePresetHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	presetID, err := presetIDParam(c)
	if err != nil {
		return err
	}

	var req UpdatePresetRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update preset request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Template != nil {
		if !scaffold.IsAllowed(*req.Template) {
			logger.Errorf("Template %q not allowed for free tier.", *req.Template)
			return &echo.HTTPError{
				Code:    http.StatusForbidden,
				Message: "Template not allowed for free tier",
			}
		}
		fields["template"] = *req.Template
	}
	if req.GitInit != nil {
		fields["git_init"] = *req.GitInit
	}
	if req.UseVenv != nil {
		fields["use_venv"] = *req.UseVenv
	}
	if req.LicenseType != nil {
		fields["license_type"] = *req.LicenseType
	}

	preset, err := h.Store.UpdatePreset(c.Request().Context(), user.ID, presetID, fields)
	if errors.Is(err, storage.ErrNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Preset not found",
		}
	}
	if err != nil {
		logger.Errorf("Failed to update preset: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Preset updated successfully")
	return c.JSON(http.StatusOK, PresetResponse{
		PresetDetails: presetDetails(preset),
		Message:       "Preset updated successfully",
	})
}

// DeletePresetHandler godoc
// @Summary      Delete a preset
// @Description  Deletes a preset owned by the caller.
// @Tags         presets
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key"
// @Param        preset_id  path    int     true  "Preset ID"
// @Success      200 {object} DeletePresetResponse "Preset deleted successfully"
// @Failure      401 {object} echo.HTTPError       "Unauthorized"
// @Failure      404 {object} echo.HTTPError       "Preset not found"
// @Router       /presets/{preset_id} [delete]
func (h *Handler) DeletePresetHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	presetID, err := presetIDParam(c)
	if err != nil {
		return err
	}

	err = h.Store.DeletePreset(c.Request().Context(), user.ID, presetID)
	if errors.Is(err, storage.ErrNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Preset not found",
		}
	}
	if err != nil {
		logger.Errorf("Failed to delete preset: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Preset deleted successfully")
	return c.JSON(http.StatusOK, DeletePresetResponse{
		Deleted: true,
		Message: "Preset deleted successfully",
	})
}

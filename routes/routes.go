// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"bootstrapper-server/commons"
	"bootstrapper-server/handlers"
	"bootstrapper-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h *handlers.Handler) {
	commons.Logger.Debug("Registering routes")

	e.GET("/", h.HomeHandler)
	e.GET("/health", h.HealthHandler)
	e.POST("/users", h.RegisterUserHandler)

	gate := middlewares.APIKeyAuth(h.Store, h.DailyLimit)
	e.GET("/templates", h.ListTemplatesHandler, gate)
	e.POST("/presets", h.CreatePresetHandler, gate)
	e.GET("/presets", h.ListPresetsHandler, gate)
	e.GET("/presets/:preset_id", h.GetPresetHandler, gate)
	e.PUT("/presets/:preset_id", h.UpdatePresetHandler, gate)
	e.DELETE("/presets/:preset_id", h.DeletePresetHandler, gate)
	e.POST("/create", h.CreateProjectHandler, gate)
	e.POST("/create-and-download", h.CreateAndDownloadHandler, gate)

	commons.Logger.Info("Routes registered successfully")
}

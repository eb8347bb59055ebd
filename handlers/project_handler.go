// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"slices"

	"bootstrapper-server/middlewares"
	"bootstrapper-server/scaffold"

	"github.com/labstack/echo/v4"
)

// ListTemplatesHandler godoc
// @Summary      List templates
// @Description  Retrieves the project templates available on the free tier.
// @Tags         projects
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key"
// @Success      200 {object} TemplatesResponse "Templates retrieved successfully"
// @Failure      401 {object} echo.HTTPError    "Unauthorized"
// @Failure      429 {object} echo.HTTPError    "Daily API call limit exceeded"
// @Router       /templates [get]
func (h *Handler) ListTemplatesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, TemplatesResponse{
		AvailableTemplates: scaffold.AllowedTemplates,
	})
}

// CreateProjectHandler godoc
// @Summary      Create a project
// @Description  Scaffolds a project from a template, charging the caller's monthly project quota.
// @Description  Returns a file manifest, or the zip archive when download=true.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key"
// @Param        download   query   bool    false "Return the zip archive instead of a manifest"
// @Param        createProjectRequest  body  CreateProjectRequest  true  "Project payload"
// @Success      200 {object} ProjectManifestResponse "Project created successfully"
// @Failure      400 {object} echo.HTTPError "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      403 {object} echo.HTTPError "Template not allowed for free tier"
// @Failure      429 {object} echo.HTTPError "Quota exceeded"
// @Router       /create [post]
func (h *Handler) CreateProjectHandler(c echo.Context) error {
	return h.createProject(c, c.QueryParam("download") == "true")
}

// Project names become zip entry paths and the download filename, so they
// are restricted to a safe charset with no path separators or quotes.
var projectNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,99}$`)

// CreateAndDownloadHandler godoc
// @Summary      Create and download a project
// @Description  Convenience wrapper around /create that always returns the zip archive.
// @Tags         projects
// @Accept       json
// @Produce      application/zip
// @Param        X-API-Key  header  string  true  "API key"
// @Param        createProjectRequest  body  CreateProjectRequest  true  "Project payload"
// @Success      200 {file} file "Project archive"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      403 {object} echo.HTTPError "Template not allowed for free tier"
// @Failure      429 {object} echo.HTTPError "Quota exceeded"
// @Router       /create-and-download [post]
func (h *Handler) CreateAndDownloadHandler(c echo.Context) error {
	return h.createProject(c, true)
}

func (h *Handler) createProject(c echo.Context, download bool) error {
	logger := c.Logger()

	user, err := middlewares.AuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create project request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Name == "" {
		logger.Error("Project name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}
	if !projectNameRegex.MatchString(req.Name) {
		logger.Errorf("Invalid project name %q.", req.Name)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name must start with a letter or digit and contain only letters, digits, dots, dashes and underscores",
		}
	}
	if !scaffold.IsAllowed(req.Template) {
		logger.Errorf("Template %q not allowed for free tier.", req.Template)
		return &echo.HTTPError{
			Code:    http.StatusForbidden,
			Message: "Template not allowed for free tier",
		}
	}

	allowed, err := h.Store.IncrementProjectAndCheckLimit(c.Request().Context(), user.ID, h.MonthLimit)
	if err != nil {
		logger.Errorf("Failed to check monthly project limit: %v", err)
		return echo.ErrInternalServerError
	}
	if !allowed {
		logger.Warnf("Monthly project limit reached for user %d.", user.ID)
		return &echo.HTTPError{
			Code:    http.StatusTooManyRequests,
			Message: "Monthly project limit exceeded",
		}
	}

	// git_init and use_venv are blocked features on the free tier; the
	// flags are accepted but not applied.
	files, err := scaffold.Render(req.Name, req.Template)
	if err != nil {
		logger.Errorf("Failed to render project: %v", err)
		return echo.ErrInternalServerError
	}

	if download {
		data, err := scaffold.Archive(files)
		if err != nil {
			logger.Errorf("Failed to archive project: %v", err)
			return echo.ErrInternalServerError
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s.zip"`, req.Name))
		return c.Blob(http.StatusOK, "application/zip", data)
	}

	logger.Infof("Project created successfully")
	fileNames := make([]string, 0, len(files))
	for name := range files {
		fileNames = append(fileNames, name)
	}
	slices.Sort(fileNames)
	return c.JSON(http.StatusOK, ProjectManifestResponse{
		ProjectName: req.Name,
		Files:       fileNames,
	})
}

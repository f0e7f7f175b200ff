package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /v1/projects.
//
// @Summary      Create a new project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	project, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:      req.Name,
		StartDate: req.StartDate,
		CloseDate: req.CloseDate,
	}, caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// List handles GET /v1/projects.
//
// @Summary      List all projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listProjectsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	projects, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toListProjectsResponse(projects))
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project by id
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  projectResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	project, err := h.service.Get(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Update handles PUT /v1/projects/:id.
//
// @Summary      Update a project's editable fields
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "New field values"
// @Success      200   {object}  projectResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	project, err := h.service.Update(c.Request().Context(), ports.UpdateProjectInput{
		ID:        c.Param("id"),
		Name:      req.Name,
		StartDate: req.StartDate,
		CloseDate: req.CloseDate,
	}, caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// SetState handles PATCH /v1/projects/:id/state.
//
// @Summary      Close or re-enable a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Project ID"
// @Param        body  body      setProjectStateRequest  true  "Target state"
// @Success      200   {object}  projectResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/projects/{id}/state [patch]
func (h *ProjectHandler) SetState(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req setProjectStateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	project, err := h.service.SetState(c.Request().Context(), c.Param("id"), domain.ProjectState(req.State), caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete handles DELETE /v1/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Project ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), caller); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/internal/core/ports"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Username   string  `json:"username" validate:"required"`
	Password   string  `json:"password" validate:"required,min=8"`
	GivenName  string  `json:"given_name"`
	Surname    string  `json:"surname"`
	NationalID string  `json:"national_id"`
	Role       string  `json:"role" validate:"required"`
	ProjectID  *string `json:"project_id"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type assignProjectRequest struct {
	ProjectID *string `json:"project_id"`
}

type userResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	GivenName  string  `json:"given_name,omitempty"`
	Surname    string  `json:"surname,omitempty"`
	NationalID string  `json:"national_id,omitempty"`
	Role       string  `json:"role"`
	ProjectID  *string `json:"project_id,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		GivenName:  u.GivenName,
		Surname:    u.Surname,
		NationalID: u.NationalID,
		Role:       string(u.Role),
		ProjectID:  u.ProjectID,
	}
}

// Create handles POST /v1/users.
//
// @Summary      Create a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "unknown role: " + req.Role, Reason: "validation_failed"})
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		GivenName:  req.GivenName,
		Surname:    req.Surname,
		NationalID: req.NationalID,
		Role:       role,
		ProjectID:  req.ProjectID,
	}, caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// List handles GET /v1/users.
//
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	return c.JSON(http.StatusOK, resp)
}

// ChangeRole handles PATCH /v1/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "unknown role: " + req.Role, Reason: "validation_failed"})
	}

	user, err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), role, caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// AssignProject handles PATCH /v1/users/:id/project. A null project_id clears
// the assignment.
//
// @Summary      Assign a user to a project
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User ID"
// @Param        body  body      assignProjectRequest  true  "Project assignment"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id}/project [patch]
func (h *UserHandler) AssignProject(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req assignProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	user, err := h.service.AssignProject(c.Request().Context(), c.Param("id"), req.ProjectID, caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), caller); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agroplan/backoffice/internal/core/ports"
)

// LedgerHandler handles HTTP requests for one resource ledger. Three
// instances are registered, one per ledger kind, all sharing this code.
type LedgerHandler struct {
	service ports.LedgerService
}

func NewLedgerHandler(service ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

func (r lineRequest) fields() ports.LineFields {
	return ports.LineFields{
		Activity:    r.Activity,
		SubAction:   r.SubAction,
		Responsible: r.Responsible,
		Time:        r.Time,
		Quantity:    r.Quantity,
		Hours:       r.Hours,
		UnitCost:    r.UnitCost,
	}
}

// List handles GET /v1/projects/:id/{ledger}.
//
// @Summary      List a project's ledger lines with their total
// @Tags         ledgers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  listLinesResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/labor [get]
func (h *LedgerHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return respondError(c, err)
	}

	resp := listLinesResponse{
		Data:  make([]lineResponse, len(result.Lines)),
		Total: result.Total,
	}
	for i := range result.Lines {
		resp.Data[i] = toLineResponse(&result.Lines[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /v1/projects/:id/{ledger}.
//
// @Summary      Add a line to a project's ledger
// @Tags         ledgers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Project ID"
// @Param        body  body      lineRequest  true  "Line fields"
// @Success      201   {object}  lineResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/projects/{id}/labor [post]
func (h *LedgerHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req lineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	line, err := h.service.Create(c.Request().Context(), c.Param("id"), req.fields(), caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toLineResponse(line))
}

// Update handles PUT /v1/{ledger}/:lineID.
//
// @Summary      Edit a ledger line
// @Tags         ledgers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        lineID  path      string       true  "Line ID"
// @Param        body    body      lineRequest  true  "Fields to change"
// @Success      200     {object}  lineResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Router       /v1/labor/{lineID} [put]
func (h *LedgerHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req lineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	line, err := h.service.Update(c.Request().Context(), c.Param("lineID"), req.fields(), caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toLineResponse(line))
}

// Delete handles DELETE /v1/{ledger}/:lineID.
//
// @Summary      Delete a ledger line
// @Tags         ledgers
// @Produce      json
// @Security     BearerAuth
// @Param        lineID  path  string  true  "Line ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/labor/{lineID} [delete]
func (h *LedgerHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("lineID"), caller); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/internal/core/ports"
)

// AuditHandler exposes the read side of the audit trail.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

type auditEventResponse struct {
	Timestamp  time.Time `json:"timestamp"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
}

func toAuditEventResponse(e domain.AuditEvent) auditEventResponse {
	return auditEventResponse{
		Timestamp:  e.Timestamp.UTC(),
		Actor:      e.Actor,
		Action:     string(e.Action),
		EntityKind: e.EntityKind,
		EntityID:   e.EntityID,
	}
}

// List handles GET /v1/audit. A "limit" query parameter caps the number of
// events returned; out-of-range values fall back to the service default.
//
// @Summary      List recent audit events, newest first
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum events to return"
// @Success      200    {array}   auditEventResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := h.service.List(c.Request().Context(), limit, caller)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]auditEventResponse, len(events))
	for i, e := range events {
		resp[i] = toAuditEventResponse(e)
	}
	return c.JSON(http.StatusOK, resp)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/pkg/logger"
)

// respondError maps a service error onto the HTTP status and machine-readable
// reason the API contract promises. Unknown errors become opaque 500s; the
// detail goes to the log, never to the client.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientRole):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "role does not permit this action", Reason: "insufficient_role"})
	case errors.Is(err, domain.ErrSelfActionForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "cannot apply this action to your own account", Reason: "self_action_forbidden"})
	case errors.Is(err, domain.ErrProjectClosed):
		return c.JSON(http.StatusConflict, errorResponse{Error: "project is closed", Reason: "project_closed"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, errorResponse{Error: "invalid state transition", Reason: "invalid_transition"})
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Reason: "validation_failed"})
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrLineNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error(), Reason: "not_found"})
	case errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: "username already taken", Reason: "user_exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials", Reason: "invalid_credentials"})
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return err
	}

	log := logger.Get()
	log.Error().Err(err).
		Str("path", c.Path()).
		Str("method", c.Request().Method).
		Msg("unhandled service error")
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

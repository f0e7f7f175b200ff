package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agroplan/backoffice/internal/core/domain"
)

// ctxCaller extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: the role must parse to
// a known value and the token must carry the caller's identity, otherwise the
// JWT is structurally valid but operationally unusable.
func ctxCaller(c echo.Context) (domain.Caller, error) {
	roleStr, _ := c.Get("role").(string)
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ := c.Get("user_id").(string)
	username, _ := c.Get("username").(string)
	if id == "" || username == "" {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing caller identity")
	}

	return domain.Caller{ID: id, Username: username, Role: role}, nil
}

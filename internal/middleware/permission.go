package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PermissionChecker answers whether a user's role carries a named permission
// code.  The user repository satisfies it via the rol_permisos join.
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID uint64, code string) (bool, error)
}

// RequirePermission enforces a fine-grained permission code on top of the
// role check.  403 when the user's role does not carry the code.
func RequirePermission(perms PermissionChecker, code string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get(CtxUserID).(uint64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token no proporcionado"})
			}
			has, err := perms.HasPermission(c.Request().Context(), uid, code)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al validar permisos"})
			}
			if !has {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "No tiene permisos para realizar esta acción"})
			}
			return next(c)
		}
	}
}

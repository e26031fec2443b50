package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole restricts a route to users whose role name (from the JWT's
// "rol" claim) is in the allowed set.  It assumes Authenticate already ran
// and stored the role in the context; a missing or unknown role yields 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rol, ok := c.Get(CtxRol).(string)
			if !ok || !allowed[rol] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "No tiene permisos para realizar esta acción"})
			}
			return next(c)
		}
	}
}

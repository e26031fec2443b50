package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/davidbc/pesv-backend/internal/utils"
)

// SessionChecker reports whether a token still has a live session row.
// The session repository satisfies it; tests substitute a fake.
type SessionChecker interface {
	IsActive(ctx context.Context, token string) (bool, error)
}

// Context keys under which Authenticate stores the decoded claims.
// Handlers read them back with c.Get().
const (
	CtxUserID    = "user_id"
	CtxEmail     = "email"
	CtxRol       = "rol"
	CtxEmpresaID = "empresa_id"
	CtxToken     = "token"
)

// Authenticate returns an Echo middleware that validates a Bearer access
// token and checks that a matching session row is still open.  A token
// whose session was expired by logout is rejected even when the JWT itself
// has not yet expired.  On success the claims are injected into the request
// context so downstream middleware and handlers can read them.
func Authenticate(secret string, sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token no proporcionado"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			cl, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token inválido o expirado"})
			}

			// The JWT alone is not enough: logout expires the sesiones
			// row, which must invalidate the token immediately.
			active, err := sessions.IsActive(c.Request().Context(), raw)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al validar la sesión"})
			}
			if !active {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Sesión cerrada o expirada"})
			}

			c.Set(CtxUserID, cl.UserID)
			c.Set(CtxEmail, cl.Email)
			c.Set(CtxRol, cl.Rol)
			c.Set(CtxEmpresaID, cl.EmpresaID)
			c.Set(CtxToken, raw)
			return next(c)
		}
	}
}

// ClaimsFromContext rebuilds the token claims a previous Authenticate call
// stored on the Echo context.  The boolean is false when the route was not
// wrapped by Authenticate.
func ClaimsFromContext(c echo.Context) (utils.Claims, bool) {
	uid, ok := c.Get(CtxUserID).(uint64)
	if !ok {
		return utils.Claims{}, false
	}
	cl := utils.Claims{UserID: uid}
	if email, ok := c.Get(CtxEmail).(string); ok {
		cl.Email = email
	}
	if rol, ok := c.Get(CtxRol).(string); ok {
		cl.Rol = rol
	}
	if emp, ok := c.Get(CtxEmpresaID).(*uint64); ok {
		cl.EmpresaID = emp
	}
	return cl, true
}

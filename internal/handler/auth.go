package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davidbc/pesv-backend/internal/config"
	"github.com/davidbc/pesv-backend/internal/middleware"
	"github.com/davidbc/pesv-backend/internal/model"
	"github.com/davidbc/pesv-backend/internal/utils"
)

// UserStore is the slice of the user repository the auth endpoints need.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateLastAccess(ctx context.Context, id uint64) error
}

// SessionStore persists and revokes login sessions.
type SessionStore interface {
	Create(ctx context.Context, s model.Session) error
	Expire(ctx context.Context, token string) error
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    UserStore
	Sessions SessionStore
}

func NewAuthHandler(cfg config.Config, u UserStore, s SessionStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID        uint64  `json:"id"`
	Nombre    string  `json:"nombre"`
	Email     string  `json:"email"`
	Rol       string  `json:"rol"`
	EmpresaID *uint64 `json:"empresa_id"`
}

type loginResp struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userPart `json:"user"`
}

// Login verifies credentials and opens a session.  An unknown email and a
// wrong password produce the identical response so the endpoint does not
// leak which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de solicitud inválido"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email y contraseña son requeridos"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Credenciales inválidas"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al iniciar sesión"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Credenciales inválidas"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, utils.Claims{
		UserID:    u.ID,
		Email:     u.Email,
		Rol:       u.Rol,
		EmpresaID: u.EmpresaID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al generar el token"})
	}

	if err := h.Sessions.Create(ctx, model.Session{
		UsuarioID: u.ID,
		Token:     access.Token,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: access.Exp,
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al registrar la sesión"})
	}

	// Best-effort stamp; a failure here must not fail the login.
	_ = h.Users.UpdateLastAccess(ctx, u.ID)

	return c.JSON(http.StatusOK, loginResp{
		Message: "Inicio de sesión exitoso",
		Token:   access.Token,
		User: userPart{
			ID:        u.ID,
			Nombre:    u.Nombre,
			Email:     u.Email,
			Rol:       u.Rol,
			EmpresaID: u.EmpresaID,
		},
	})
}

// Logout expires the caller's session row.  Idempotent: logging out twice
// with the same token still answers 200.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.CtxToken).(string)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token no proporcionado"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sessions.Expire(ctx, token); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al cerrar la sesión"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Sesión cerrada correctamente"})
}

// Me returns the authenticated user's profile.  404 covers the edge where
// the account was deleted after the token was issued.
func (h *AuthHandler) Me(c echo.Context) error {
	cl, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token no proporcionado"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, cl.UserID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Usuario no encontrado"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar el usuario"})
	}

	resp := echo.Map{
		"id":         u.ID,
		"nombre":     u.Nombre,
		"email":      u.Email,
		"rol":        u.Rol,
		"empresa_id": u.EmpresaID,
		"estado":     u.Estado,
	}
	if u.UltimoAcceso != nil {
		resp["ultimo_acceso"] = u.UltimoAcceso
	}
	return c.JSON(http.StatusOK, resp)
}

// Package router defines how HTTP routes are registered for the API.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/davidbc/pesv-backend/internal/handler"
	"github.com/davidbc/pesv-backend/internal/middleware"
	"github.com/davidbc/pesv-backend/internal/model"
)

// Handlers groups every handler the API mounts.  Built once in main and
// passed here so route registration stays in one place.
type Handlers struct {
	Auth             *handler.AuthHandler
	Register         *handler.RegisterHandler
	Password         *handler.PasswordHandler
	Inspections      *handler.InspectionHandler
	AdminInspections *handler.AdminInspectionHandler
	Drivers          *handler.DriverHandler
	Vehicles         *handler.VehicleHandler
}

// Deps carries the middleware dependencies route registration needs.
type Deps struct {
	JWTSecret string
	Sessions  middleware.SessionChecker
	Perms     middleware.PermissionChecker
	Redis     *redis.Client // nil disables rate limiting
}

// Register mounts every route under /api.  Public endpoints (health, login,
// registration, password reset) take no auth; everything else goes through
// Authenticate, and the admin console additionally requires an admin role.
func Register(e *echo.Echo, h Handlers, d Deps) {
	api := e.Group("/api")

	api.GET("/health", handler.Health)

	// Credential endpoints get a fixed-window rate limit per client IP.
	loginLimit := middleware.RateLimit(d.Redis, "login", 10, time.Minute)
	resetLimit := middleware.RateLimit(d.Redis, "reset", 5, time.Minute)

	api.POST("/auth/login", h.Auth.Login, loginLimit)
	api.POST("/register-company", h.Register.RegisterCompany)
	api.POST("/register-driver", h.Register.RegisterDriver)
	api.POST("/send-verification-code", h.Password.SendVerificationCode, resetLimit)
	api.POST("/verify-code-and-update-password", h.Password.VerifyCodeAndUpdatePassword, resetLimit)

	// Authenticated routes: valid JWT plus a live session row.
	auth := api.Group("", middleware.Authenticate(d.JWTSecret, d.Sessions))

	auth.POST("/auth/logout", h.Auth.Logout)
	auth.GET("/auth/me", h.Auth.Me)

	auth.POST("/inspections", h.Inspections.Create)
	auth.GET("/inspections/company/:empresa_id", h.Inspections.ListByCompany)
	auth.PATCH("/inspections/:id/status", h.Inspections.UpdateStatusLegacy)

	auth.GET("/conductores", h.Drivers.List)
	auth.GET("/conductores/:id", h.Drivers.Get)
	auth.GET("/conductores/:id/vehiculos", h.Drivers.Vehicles)
	auth.GET("/conductores/stats/empresa/:id", h.Drivers.Stats)
	auth.GET("/conductores/alertas/empresa/:id", h.Drivers.Alerts)

	auth.GET("/vehiculos", h.Vehicles.List)
	auth.GET("/vehiculos/:id", h.Vehicles.Get)
	auth.DELETE("/vehiculos/:id", h.Vehicles.Deactivate,
		middleware.RequireRole("superadmin", "admin_empresa"))

	// Admin review console: admin roles only, and the status transition
	// additionally requires the explicit permission code.
	admin := auth.Group("/admin", middleware.RequireRole("superadmin", "admin_empresa"))
	admin.GET("/inspections", h.AdminInspections.List)
	admin.GET("/inspections/pending", h.AdminInspections.Pending)
	admin.GET("/inspections/:id", h.AdminInspections.Detail)
	admin.PUT("/inspections/:id/status", h.AdminInspections.UpdateStatus,
		middleware.RequirePermission(d.Perms, model.PermRevisarInspecciones))
}

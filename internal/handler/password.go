package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davidbc/pesv-backend/internal/config"
	"github.com/davidbc/pesv-backend/internal/notification"
	"github.com/davidbc/pesv-backend/internal/repository"
	"github.com/davidbc/pesv-backend/internal/utils"
	"github.com/davidbc/pesv-backend/internal/verification"
)

// PasswordUserStore is the slice of the user repository the reset flow
// needs: existence check before issuing a code and the hash update after.
type PasswordUserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// PasswordHandler serves the two-step password recovery flow.
type PasswordHandler struct {
	Cfg    config.Config
	Users  PasswordUserStore
	Codes  verification.Store
	Mailer notification.Mailer
}

func NewPasswordHandler(cfg config.Config, u PasswordUserStore, codes verification.Store, m notification.Mailer) *PasswordHandler {
	return &PasswordHandler{Cfg: cfg, Users: u, Codes: codes, Mailer: m}
}

type sendCodeReq struct {
	Email string `json:"email"`
}

// SendVerificationCode issues a 6-digit reset code to a known account and
// mails it.  Unknown emails answer 404 so the client can tell the user the
// account does not exist; that disclosure matches the product's behavior.
func (h *PasswordHandler) SendVerificationCode(c echo.Context) error {
	var req sendCodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de solicitud inválido"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "El email es requerido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al verificar el email"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No existe una cuenta con ese email"})
	}

	code, err := verification.NewCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al generar el código"})
	}
	if err := h.Codes.Put(ctx, req.Email, code); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al guardar el código"})
	}

	if !h.Mailer.SendVerificationCode(req.Email, code) {
		log.Printf("password-reset: no se pudo enviar el código a %s", req.Email)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al enviar el código de verificación"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Código de verificación enviado"})
}

type verifyCodeReq struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// VerifyCodeAndUpdatePassword redeems a code and replaces the password.
// The code is strictly single-use: a successful redemption deletes it, so a
// replayed request answers 400.
func (h *PasswordHandler) VerifyCodeAndUpdatePassword(c echo.Context) error {
	var req verifyCodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de solicitud inválido"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email, código y nueva contraseña son requeridos"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Codes.Consume(ctx, req.Email, req.Code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al verificar el código"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Código inválido o expirado"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al procesar la contraseña"})
	}
	if err := h.Users.UpdatePassword(ctx, req.Email, hash); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No existe una cuenta con ese email"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar la contraseña"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Contraseña actualizada correctamente"})
}

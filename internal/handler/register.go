package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davidbc/pesv-backend/internal/config"
	"github.com/davidbc/pesv-backend/internal/model"
	"github.com/davidbc/pesv-backend/internal/repository"
	"github.com/davidbc/pesv-backend/internal/utils"
)

// CompanyRegistrar runs the company + admin transaction.
type CompanyRegistrar interface {
	RegisterCompany(ctx context.Context, c model.Company, admin repository.AdminRegistration) (uint64, error)
}

// DriverRegistrar runs the driver + vehicle transaction.
type DriverRegistrar interface {
	RegisterDriver(ctx context.Context, reg repository.DriverRegistration) (uint64, error)
}

// RegisterHandler serves the two transactional onboarding endpoints.
type RegisterHandler struct {
	Cfg       config.Config
	Companies CompanyRegistrar
	Drivers   DriverRegistrar
}

func NewRegisterHandler(cfg config.Config, c CompanyRegistrar, d DriverRegistrar) *RegisterHandler {
	return &RegisterHandler{Cfg: cfg, Companies: c, Drivers: d}
}

type registerCompanyReq struct {
	NombreEmpresa  string `json:"nombreEmpresa"`
	NIT            string `json:"nit"`
	Direccion      string `json:"direccion"`
	TelefonoEmp    string `json:"telefonoEmpresa"`
	EmailEmp       string `json:"emailEmpresa"`
	NombreAdmin    string `json:"nombreAdmin"`
	Identificacion string `json:"identificacion"`
	TelefonoAdmin  string `json:"telefonoAdmin"`
	EmailAdmin     string `json:"emailAdmin"`
	Password       string `json:"password"`
}

// RegisterCompany creates the empresa row and its admin account in one
// transaction.  Any failed step rolls the whole registration back and the
// response carries the driver detail for diagnosis.
func (h *RegisterHandler) RegisterCompany(c echo.Context) error {
	var req registerCompanyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de solicitud inválido"})
	}
	if req.NombreEmpresa == "" || req.NIT == "" || req.NombreAdmin == "" ||
		req.EmailAdmin == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Faltan campos requeridos"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al procesar la contraseña"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	empresaID, err := h.Companies.RegisterCompany(ctx, model.Company{
		Nombre:    req.NombreEmpresa,
		NIT:       req.NIT,
		Direccion: req.Direccion,
		Telefono:  req.TelefonoEmp,
		Email:     strings.ToLower(strings.TrimSpace(req.EmailEmp)),
	}, repository.AdminRegistration{
		Nombre:         req.NombreAdmin,
		Identificacion: req.Identificacion,
		Telefono:       req.TelefonoAdmin,
		Email:          req.EmailAdmin,
		PasswordHash:   hash,
	})
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "El email ya está registrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Error al registrar la empresa",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Empresa registrada exitosamente",
		"empresa_id": empresaID,
	})
}

type registerDriverReq struct {
	EmpresaID      uint64 `json:"empresa_id"`
	Nombre         string `json:"nombre"`
	Identificacion string `json:"identificacion"`
	Telefono       string `json:"telefono"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Placa          string `json:"placa"`
	Marca          string `json:"marca"`
	Modelo         string `json:"modelo"`
	TipoVehiculo   string `json:"tipoVehiculo"`
}

// RegisterDriver creates the conductor account and its vehicle in one
// transaction, same contract as RegisterCompany.
func (h *RegisterHandler) RegisterDriver(c echo.Context) error {
	var req registerDriverReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de solicitud inválido"})
	}
	if req.EmpresaID == 0 || req.Nombre == "" || req.Email == "" ||
		req.Password == "" || req.Placa == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Faltan campos requeridos"})
	}
	tipo := strings.ToLower(strings.TrimSpace(req.TipoVehiculo))
	if tipo != model.VehiculoCarro && tipo != model.VehiculoMoto {
		tipo = model.VehiculoCarro
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al procesar la contraseña"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	conductorID, err := h.Drivers.RegisterDriver(ctx, repository.DriverRegistration{
		EmpresaID:      req.EmpresaID,
		Nombre:         req.Nombre,
		Identificacion: req.Identificacion,
		Telefono:       req.Telefono,
		Email:          req.Email,
		PasswordHash:   hash,
		Placa:          req.Placa,
		Marca:          req.Marca,
		Modelo:         req.Modelo,
		TipoVehiculo:   tipo,
	})
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "El email ya está registrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Error al registrar el conductor",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Conductor registrado exitosamente",
		"conductor_id": conductorID,
	})
}

package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davidbc/pesv-backend/internal/model"
	"github.com/davidbc/pesv-backend/internal/repository"
)

// DriverStore is the slice of the driver repository the fleet views need.
type DriverStore interface {
	List(ctx context.Context) ([]model.Driver, error)
	Get(ctx context.Context, id uint64) (model.Driver, error)
	Vehicles(ctx context.Context, driverID uint64) ([]model.Vehicle, error)
	CompanyStats(ctx context.Context, empresaID uint64) (repository.Stats, error)
	CompanyAlerts(ctx context.Context, empresaID uint64) ([]repository.Alert, error)
}

// DriverHandler serves the conductor listings, compliance stats and alerts.
type DriverHandler struct {
	Drivers DriverStore
}

func NewDriverHandler(d DriverStore) *DriverHandler { return &DriverHandler{Drivers: d} }

type driverResp struct {
	ID                       uint64     `json:"id"`
	Nombre                   string     `json:"nombre"`
	Identificacion           string     `json:"identificacion"`
	Telefono                 string     `json:"telefono"`
	Email                    string     `json:"email"`
	NumeroLicencia           *string    `json:"numero_licencia"`
	CategoriaLicencia        *string    `json:"categoria_licencia"`
	FechaVencimientoLicencia *time.Time `json:"fecha_vencimiento_licencia"`
	FechaIngresoEmpresa      *time.Time `json:"fecha_ingreso_empresa"`
	EstadoCapacitacionPESV   string     `json:"estado_capacitacion_pesv"`
	FechaUltimaCapacitacion  *time.Time `json:"fecha_ultima_capacitacion"`
	FechaProximaCapacitacion *time.Time `json:"fecha_proxima_capacitacion"`
	Estado                   string     `json:"estado"`
	EmpresaNombre            string     `json:"empresa_nombre"`
}

func toDriverResp(d model.Driver) driverResp {
	return driverResp{
		ID:                       d.ID,
		Nombre:                   d.Nombre,
		Identificacion:           d.Identificacion,
		Telefono:                 d.Telefono,
		Email:                    d.Email,
		NumeroLicencia:           d.NumeroLicencia,
		CategoriaLicencia:        d.CategoriaLicencia,
		FechaVencimientoLicencia: d.FechaVencimientoLicencia,
		FechaIngresoEmpresa:      d.FechaIngresoEmpresa,
		EstadoCapacitacionPESV:   d.EstadoCapacitacionPESV,
		FechaUltimaCapacitacion:  d.FechaUltimaCapacitacion,
		FechaProximaCapacitacion: d.FechaProximaCapacitacion,
		Estado:                   d.Estado,
		EmpresaNombre:            d.EmpresaNombre,
	}
}

// List returns every conductor with its company, ordered by name.
func (h *DriverHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	drivers, err := h.Drivers.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar los conductores"})
	}
	out := make([]driverResp, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, toDriverResp(d))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one conductor by id.
func (h *DriverHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Drivers.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Conductor no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar el conductor"})
	}
	return c.JSON(http.StatusOK, toDriverResp(d))
}

// Vehicles lists the vehicles assigned to a conductor.
func (h *DriverHandler) Vehicles(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vehicles, err := h.Drivers.Vehicles(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar los vehículos"})
	}

	out := make([]echo.Map, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, echo.Map{
			"id":            v.ID,
			"placa":         v.Placa,
			"marca":         v.Marca,
			"modelo":        v.Modelo,
			"tipo_vehiculo": v.TipoVehiculo,
			"activo":        v.Activo,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Stats returns the aggregate compliance counters for a company's drivers.
func (h *DriverHandler) Stats(c echo.Context) error {
	empresaID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || empresaID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "empresa_id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Drivers.CompanyStats(ctx, empresaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar las estadísticas"})
	}
	return c.JSON(http.StatusOK, s)
}

// Alerts returns the drivers whose license or training needs attention.
func (h *DriverHandler) Alerts(c echo.Context) error {
	empresaID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || empresaID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "empresa_id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	alerts, err := h.Drivers.CompanyAlerts(ctx, empresaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar las alertas"})
	}
	if alerts == nil {
		alerts = []repository.Alert{}
	}
	return c.JSON(http.StatusOK, alerts)
}

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

// VehicleStore is the slice of the vehicle repository the fleet views need.
type VehicleStore interface {
	List(ctx context.Context, tipo string) ([]repository.VehicleRow, error)
	Get(ctx context.Context, id uint64) (repository.VehicleDetail, error)
	Deactivate(ctx context.Context, id uint64) error
}

// VehicleHandler serves the fleet listing endpoints.
type VehicleHandler struct {
	Vehicles VehicleStore
}

func NewVehicleHandler(v VehicleStore) *VehicleHandler { return &VehicleHandler{Vehicles: v} }

// List returns active vehicles, optionally filtered by ?tipo=carro|moto.
func (h *VehicleHandler) List(c echo.Context) error {
	tipo := c.QueryParam("tipo")
	if tipo != "" && tipo != model.VehiculoCarro && tipo != model.VehiculoMoto {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tipo debe ser 'carro' o 'moto'"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Vehicles.List(ctx, tipo)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar los vehículos"})
	}
	if rows == nil {
		rows = []repository.VehicleRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

// Get returns one vehicle by id, active or not.
func (h *VehicleHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Vehicles.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Vehículo no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar el vehículo"})
	}
	return c.JSON(http.StatusOK, v)
}

// Deactivate soft-deletes a vehicle.  The row stays for inspection history;
// only the activo flag is cleared.
func (h *VehicleHandler) Deactivate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Vehicles.Deactivate(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Vehículo no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al desactivar el vehículo"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vehículo desactivado correctamente"})
}

package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davidbc/pesv-backend/internal/model"
	"github.com/davidbc/pesv-backend/internal/notification"
	"github.com/davidbc/pesv-backend/internal/repository"
)

// InspectionStore is the slice of the inspection repository the driver-side
// endpoints need.
type InspectionStore interface {
	Create(ctx context.Context, ins *model.Inspection) (uint64, error)
	ListByCompany(ctx context.Context, empresaID uint64, f repository.Filter) ([]repository.ListRow, error)
	AppendStatus(ctx context.Context, id uint64, estado, comentario string) error
	GetNotificationInfo(ctx context.Context, id uint64) (repository.NotificationInfo, error)
}

// AdminLookup resolves the company admin to notify for a vehicle.
type AdminLookup interface {
	AdminContactForVehicle(ctx context.Context, vehiculoID uint64) (repository.AdminContact, error)
}

// InspectionHandler serves the driver-facing inspection endpoints.
type InspectionHandler struct {
	Inspections InspectionStore
	Companies   AdminLookup
	Mailer      notification.Mailer
}

func NewInspectionHandler(i InspectionStore, c AdminLookup, m notification.Mailer) *InspectionHandler {
	return &InspectionHandler{Inspections: i, Companies: c, Mailer: m}
}

type createInspectionReq struct {
	VehiculoID      uint64          `json:"vehiculo_id"`
	ConductorID     uint64          `json:"conductor_id"`
	FechaInspeccion string          `json:"fecha_inspeccion"`
	Kilometraje     int             `json:"kilometraje"`
	TipoVehiculo    string          `json:"tipo_vehiculo"`
	Resultados      json.RawMessage `json:"resultados"`
	FirmaBase64     string          `json:"firma_base64"`
	PDFBase64       string          `json:"pdf_base64"`
	Observaciones   string          `json:"observaciones"`
	// Estado is accepted but ignored: new inspections are always pendiente.
	Estado string `json:"estado"`
}

// fechaLayouts are the datetime formats clients have been observed to send.
var fechaLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseFecha(s string) (time.Time, bool) {
	for _, layout := range fechaLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Create registers a new pre-operational inspection.  Missing required
// fields answer 400 with the field list; whatever estado the client sent is
// discarded and the row is born pendiente.  After the insert the company
// admin is notified by email best-effort: a send failure downgrades to a
// warning on the 201, never an error.
func (h *InspectionHandler) Create(c echo.Context) error {
	var req createInspectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de solicitud inválido"})
	}

	var missing []string
	if req.VehiculoID == 0 {
		missing = append(missing, "vehiculo_id")
	}
	if req.ConductorID == 0 {
		missing = append(missing, "conductor_id")
	}
	if req.FechaInspeccion == "" {
		missing = append(missing, "fecha_inspeccion")
	}
	if req.TipoVehiculo == "" {
		missing = append(missing, "tipo_vehiculo")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Faltan campos requeridos: " + strings.Join(missing, ", "),
		})
	}

	fecha, ok := parseFecha(req.FechaInspeccion)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fecha_inspeccion tiene un formato inválido"})
	}

	resultados := "{}"
	if len(req.Resultados) > 0 && json.Valid(req.Resultados) {
		resultados = string(req.Resultados)
	}

	ins := model.Inspection{
		VehiculoID:      req.VehiculoID,
		ConductorID:     req.ConductorID,
		FechaInspeccion: fecha,
		Kilometraje:     req.Kilometraje,
		TipoVehiculo:    strings.ToLower(strings.TrimSpace(req.TipoVehiculo)),
		Resultados:      resultados,
		FirmaBase64:     req.FirmaBase64,
		PDFBase64:       req.PDFBase64,
	}
	if req.Observaciones != "" {
		ins.Observaciones = &req.Observaciones
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Inspections.Create(ctx, &ins)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Error al guardar la inspección",
			"details": err.Error(),
		})
	}

	resp := echo.Map{
		"message":       "Inspección registrada exitosamente",
		"inspection_id": id,
	}
	if warning := h.notifyAdmin(ctx, id, ins); warning != "" {
		resp["warning"] = warning
	}
	return c.JSON(http.StatusCreated, resp)
}

// notifyAdmin resolves the fleet admin for the inspected vehicle and mails
// the pending-review notice, attaching the PDF when the client uploaded
// one.  Returns a human-readable warning when the notification could not
// go out.
func (h *InspectionHandler) notifyAdmin(ctx context.Context, id uint64, ins model.Inspection) string {
	contact, err := h.Companies.AdminContactForVehicle(ctx, ins.VehiculoID)
	if err != nil {
		log.Printf("inspecciones: sin contacto administrador para vehiculo %d: %v", ins.VehiculoID, err)
		return "La inspección fue guardada pero no se encontró un administrador para notificar"
	}

	obs := ""
	if ins.Observaciones != nil {
		obs = *ins.Observaciones
	}

	sent := false
	if ins.PDFBase64 != "" {
		sent = h.Mailer.SendInspectionPDF(contact.AdminEmail, contact.EmpresaNombre,
			contact.Placa, contact.ConductorNombre, ins.TipoVehiculo,
			ins.FechaInspeccion, ins.Kilometraje, obs, ins.PDFBase64)
	} else {
		sent = h.Mailer.SendInspectionNotificationToAdmin(contact.AdminEmail, contact.EmpresaNombre,
			contact.Placa, contact.ConductorNombre, ins.TipoVehiculo,
			ins.FechaInspeccion, ins.Kilometraje, obs, id)
	}
	if !sent {
		return "La inspección fue guardada pero no se pudo enviar la notificación por correo"
	}
	return ""
}

// ListByCompany returns a company's inspections, optionally filtered by
// estado, tipo_vehiculo and date range.
func (h *InspectionHandler) ListByCompany(c echo.Context) error {
	empresaID, err := strconv.ParseUint(c.Param("empresa_id"), 10, 64)
	if err != nil || empresaID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "empresa_id inválido"})
	}

	f := repository.Filter{
		Estado:       c.QueryParam("estado"),
		TipoVehiculo: c.QueryParam("tipo_vehiculo"),
		FechaInicio:  c.QueryParam("fecha_inicio"),
		FechaFin:     c.QueryParam("fecha_fin"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Inspections.ListByCompany(ctx, empresaID, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar las inspecciones"})
	}
	if rows == nil {
		rows = []repository.ListRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

type legacyStatusReq struct {
	Estado     string `json:"estado"`
	Comentario string `json:"comentario"`
}

// UpdateStatusLegacy is the older status endpoint still used by deployed
// clients.  It accepts any estado string and concatenates the comment onto
// observaciones; the stricter admin review endpoint supersedes it.
func (h *InspectionHandler) UpdateStatusLegacy(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req legacyStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de solicitud inválido"})
	}
	if req.Estado == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "El estado es requerido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Inspections.AppendStatus(ctx, id, req.Estado, req.Comentario); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Inspección no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar el estado"})
	}

	resp := echo.Map{"message": "Estado actualizado correctamente"}
	if warning := h.notifyDriver(ctx, id, req.Estado, req.Comentario); warning != "" {
		resp["warning"] = warning
	}
	return c.JSON(http.StatusOK, resp)
}

// notifyDriver mails the driver the review outcome, best-effort.
func (h *InspectionHandler) notifyDriver(ctx context.Context, id uint64, estado, comentario string) string {
	info, err := h.Inspections.GetNotificationInfo(ctx, id)
	if err != nil {
		log.Printf("inspecciones: sin datos de notificación para inspección %d: %v", id, err)
		return "El estado fue actualizado pero no se pudo notificar al conductor"
	}
	if !h.Mailer.SendStatusUpdate(info.ConductorEmail, estado, info.Placa, info.ConductorNombre, comentario) {
		return "El estado fue actualizado pero no se pudo enviar la notificación por correo"
	}
	return ""
}

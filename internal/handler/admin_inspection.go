package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davidbc/pesv-backend/internal/middleware"
	"github.com/davidbc/pesv-backend/internal/model"
	"github.com/davidbc/pesv-backend/internal/notification"
	"github.com/davidbc/pesv-backend/internal/queue"
	"github.com/davidbc/pesv-backend/internal/repository"
)

// AdminInspectionStore is the slice of the inspection repository the review
// console needs.
type AdminInspectionStore interface {
	ListAdmin(ctx context.Context, f repository.Filter) ([]repository.ListRow, error)
	GetDetail(ctx context.Context, id uint64) (repository.Detail, error)
	Review(ctx context.Context, id uint64, estado string, comentario *string, adminID *uint64) error
	GetNotificationInfo(ctx context.Context, id uint64) (repository.NotificationInfo, error)
}

// AdminInspectionHandler serves the admin review console.  Publish is the
// broker hook for review events; it may be nil (broker disabled) and its
// errors only downgrade to warnings.
type AdminInspectionHandler struct {
	Inspections AdminInspectionStore
	Mailer      notification.Mailer
	Publish     func(ctx context.Context, ev queue.InspectionReviewedEvent) error
}

func NewAdminInspectionHandler(i AdminInspectionStore, m notification.Mailer,
	publish func(ctx context.Context, ev queue.InspectionReviewedEvent) error) *AdminInspectionHandler {
	return &AdminInspectionHandler{Inspections: i, Mailer: m, Publish: publish}
}

// List returns inspections across companies, filtered by estado,
// empresa_id and date range, newest first.
func (h *AdminInspectionHandler) List(c echo.Context) error {
	f := repository.Filter{
		Estado:      c.QueryParam("estado"),
		FechaInicio: c.QueryParam("fecha_inicio"),
		FechaFin:    c.QueryParam("fecha_fin"),
	}
	if raw := c.QueryParam("empresa_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "empresa_id inválido"})
		}
		f.EmpresaID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Inspections.ListAdmin(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar las inspecciones"})
	}
	if rows == nil {
		rows = []repository.ListRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

// Pending is the review queue: every inspection still in pendiente.
func (h *AdminInspectionHandler) Pending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Inspections.ListAdmin(ctx, repository.Filter{Estado: model.InspeccionPendiente})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar las inspecciones pendientes"})
	}
	if rows == nil {
		rows = []repository.ListRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

// Detail returns the full inspection record for the review screen.
func (h *AdminInspectionHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Inspections.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Inspección no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al consultar la inspección"})
	}
	return c.JSON(http.StatusOK, d)
}

type reviewReq struct {
	Estado          string  `json:"estado"`
	ComentarioAdmin string  `json:"comentario_admin"`
	AdminID         *uint64 `json:"admin_id"`
}

// UpdateStatus applies the one-shot review transition.  estado must be
// aprobada or rechazada; a row that already left pendiente answers 409.
// Email and broker fan-out are best-effort after the commit: their failures
// land in a `warning` field on the 200, never in the status code.
func (h *AdminInspectionHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de solicitud inválido"})
	}
	if !model.ReviewableEstado(req.Estado) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "El estado debe ser 'aprobada' o 'rechazada'"})
	}

	adminID := req.AdminID
	if adminID == nil {
		if cl, ok := middleware.ClaimsFromContext(c); ok {
			adminID = &cl.UserID
		}
	}
	var comentario *string
	if req.ComentarioAdmin != "" {
		comentario = &req.ComentarioAdmin
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Inspections.Review(ctx, id, req.Estado, comentario, adminID); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Inspección no encontrada"})
		case repository.ErrAlreadyReviewed:
			return c.JSON(http.StatusConflict, echo.Map{"error": "La inspección ya fue revisada"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar el estado"})
		}
	}

	resp := echo.Map{
		"message":       "Estado actualizado correctamente",
		"inspection_id": id,
		"estado":        req.Estado,
	}
	if warning := h.fanOut(ctx, id, req.Estado, req.ComentarioAdmin, adminID); warning != "" {
		resp["warning"] = warning
	}
	return c.JSON(http.StatusOK, resp)
}

// fanOut delivers the driver email and the broker event for a committed
// review.  Neither failure can undo the review; the worst outcome is a
// warning string.
func (h *AdminInspectionHandler) fanOut(ctx context.Context, id uint64, estado, comentario string, adminID *uint64) string {
	info, err := h.Inspections.GetNotificationInfo(ctx, id)
	if err != nil {
		log.Printf("revision: sin datos de notificación para inspección %d: %v", id, err)
		return "El estado fue actualizado pero no se pudo notificar al conductor"
	}

	var warning string
	if !h.Mailer.SendStatusUpdate(info.ConductorEmail, estado, info.Placa, info.ConductorNombre, comentario) {
		warning = "El estado fue actualizado pero no se pudo enviar la notificación por correo"
	}

	if h.Publish != nil {
		var aid uint64
		if adminID != nil {
			aid = *adminID
		}
		ev := queue.InspectionReviewedEvent{
			InspectionID: id,
			VehiculoID:   info.VehiculoID,
			ConductorID:  info.ConductorID,
			Placa:        info.Placa,
			Conductor:    info.ConductorNombre,
			AdminID:      aid,
			Estado:       estado,
			Comentario:   comentario,
			ReviewedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("revision: no se pudo publicar el evento de revisión %d: %v", id, err)
			if warning == "" {
				warning = "El estado fue actualizado pero no se pudo publicar el evento de auditoría"
			}
		}
	}
	return warning
}

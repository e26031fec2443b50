package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidbc/pesv-backend/internal/model"
	"github.com/davidbc/pesv-backend/internal/repository"
)

func TestCreateInspectionMissingFields(t *testing.T) {
	h := NewInspectionHandler(&fakeInspections{}, &fakeAdminLookup{}, &fakeMailer{ok: true})

	rec := postJSON(t, h.Create, "/api/inspections", `{"kilometraje":45200}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	msg := body["error"].(string)
	for _, field := range []string{"vehiculo_id", "conductor_id", "fecha_inspeccion", "tipo_vehiculo"} {
		assert.Contains(t, msg, field)
	}
}

func TestCreateInspectionForcesPendiente(t *testing.T) {
	store := &fakeInspections{}
	h := NewInspectionHandler(store, &fakeAdminLookup{
		contact: repository.AdminContact{AdminEmail: "admin@empresa.co", EmpresaNombre: "Transportes Andinos"},
	}, &fakeMailer{ok: true})

	// The client claims aprobada; the server must ignore it.
	rec := postJSON(t, h.Create, "/api/inspections", `{
		"vehiculo_id": 4,
		"conductor_id": 12,
		"fecha_inspeccion": "2025-06-15T08:30:00Z",
		"kilometraje": 45200,
		"tipo_vehiculo": "carro",
		"resultados": {"frenos": "ok", "luces": "ok"},
		"estado": "aprobada"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, store.created, 1)
	assert.Equal(t, model.InspeccionPendiente, store.created[0].Estado)
	assert.JSONEq(t, `{"frenos":"ok","luces":"ok"}`, store.created[0].Resultados)

	body := decodeBody(t, rec)
	assert.NotContains(t, body, "warning")
	assert.Equal(t, float64(1), body["inspection_id"])
}

func TestCreateInspectionMailFailureIsWarning(t *testing.T) {
	store := &fakeInspections{}
	mailer := &fakeMailer{ok: false}
	h := NewInspectionHandler(store, &fakeAdminLookup{
		contact: repository.AdminContact{AdminEmail: "admin@empresa.co"},
	}, mailer)

	rec := postJSON(t, h.Create, "/api/inspections", `{
		"vehiculo_id": 4, "conductor_id": 12,
		"fecha_inspeccion": "2025-06-15 08:30:00", "tipo_vehiculo": "moto"
	}`)

	// Inspection persists and the response is still a 201, with a warning.
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.created, 1)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "warning")
	assert.Len(t, mailer.adminNotices, 1)
}

func TestCreateInspectionSendsPDFWhenPresent(t *testing.T) {
	mailer := &fakeMailer{ok: true}
	h := NewInspectionHandler(&fakeInspections{}, &fakeAdminLookup{
		contact: repository.AdminContact{AdminEmail: "admin@empresa.co"},
	}, mailer)

	rec := postJSON(t, h.Create, "/api/inspections", `{
		"vehiculo_id": 4, "conductor_id": 12,
		"fecha_inspeccion": "2025-06-15", "tipo_vehiculo": "carro",
		"pdf_base64": "data:application/pdf;base64,JVBERi0xLjQ="
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, mailer.pdfNotices, 1, "PDF variant must be used when the client uploaded one")
	assert.Empty(t, mailer.adminNotices)
}

func TestCreateInspectionForeignKeyViolation(t *testing.T) {
	store := &fakeInspections{createErr: errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails")}
	h := NewInspectionHandler(store, &fakeAdminLookup{}, &fakeMailer{ok: true})

	rec := postJSON(t, h.Create, "/api/inspections", `{
		"vehiculo_id": 999, "conductor_id": 12,
		"fecha_inspeccion": "2025-06-15", "tipo_vehiculo": "carro"
	}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["details"], "foreign key constraint")
	assert.Empty(t, store.created)
}

func TestCreateInspectionBadDate(t *testing.T) {
	h := NewInspectionHandler(&fakeInspections{}, &fakeAdminLookup{}, &fakeMailer{ok: true})
	rec := postJSON(t, h.Create, "/api/inspections", `{
		"vehiculo_id": 4, "conductor_id": 12,
		"fecha_inspeccion": "15/06/2025", "tipo_vehiculo": "carro"
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusLegacy(t *testing.T) {
	store := &fakeInspections{
		notifInfo: repository.NotificationInfo{
			Placa: "ABC123", ConductorNombre: "Ana Gómez", ConductorEmail: "ana@empresa.co",
		},
	}
	mailer := &fakeMailer{ok: true}
	h := NewInspectionHandler(store, &fakeAdminLookup{}, mailer)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/inspections/91/status",
		strings.NewReader(`{"estado":"en_revision","comentario":"pendiente de repuesto"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("91")

	require.NoError(t, h.UpdateStatusLegacy(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// The legacy path accepts estados the strict endpoint would reject.
	require.Len(t, store.appended, 1)
	assert.Equal(t, appendCall{id: 91, estado: "en_revision", comentario: "pendiente de repuesto"}, store.appended[0])
	assert.Equal(t, []string{"en_revision"}, mailer.statusUpdates)
}

func TestUpdateStatusLegacyNotFound(t *testing.T) {
	store := &fakeInspections{appendErr: repository.ErrNotFound}
	h := NewInspectionHandler(store, &fakeAdminLookup{}, &fakeMailer{ok: true})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/inspections/99/status",
		strings.NewReader(`{"estado":"aprobada"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.UpdateStatusLegacy(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

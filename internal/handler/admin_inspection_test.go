package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidbc/pesv-backend/internal/queue"
	"github.com/davidbc/pesv-backend/internal/repository"
)

func putStatus(t *testing.T, h *AdminInspectionHandler, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/inspections/"+id+"/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.UpdateStatus(c))
	return rec
}

func TestUpdateStatusValidatesEstado(t *testing.T) {
	store := &fakeInspections{}
	h := NewAdminInspectionHandler(store, &fakeMailer{ok: true}, nil)

	for _, estado := range []string{"pendiente", "en_revision", "APROBADA", ""} {
		rec := putStatus(t, h, "91", `{"estado":"`+estado+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "estado %q must be rejected", estado)
	}
	assert.Empty(t, store.reviews)
}

func TestUpdateStatusNotFound(t *testing.T) {
	store := &fakeInspections{reviewErr: repository.ErrNotFound}
	h := NewAdminInspectionHandler(store, &fakeMailer{ok: true}, nil)

	rec := putStatus(t, h, "99", `{"estado":"aprobada"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusAlreadyReviewed(t *testing.T) {
	store := &fakeInspections{reviewErr: repository.ErrAlreadyReviewed}
	h := NewAdminInspectionHandler(store, &fakeMailer{ok: true}, nil)

	rec := putStatus(t, h, "91", `{"estado":"rechazada"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateStatusSuccess(t *testing.T) {
	adminID := uint64(2)
	store := &fakeInspections{
		notifInfo: repository.NotificationInfo{
			VehiculoID: 4, ConductorID: 12, Placa: "ABC123",
			ConductorNombre: "Ana Gómez", ConductorEmail: "ana@empresa.co",
		},
	}
	mailer := &fakeMailer{ok: true}

	var published []queue.InspectionReviewedEvent
	publish := func(_ context.Context, ev queue.InspectionReviewedEvent) error {
		published = append(published, ev)
		return nil
	}
	h := NewAdminInspectionHandler(store, mailer, publish)

	rec := putStatus(t, h, "91", `{"estado":"aprobada","comentario_admin":"todo en orden","admin_id":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, store.reviews, 1)
	call := store.reviews[0]
	assert.Equal(t, uint64(91), call.id)
	assert.Equal(t, "aprobada", call.estado)
	require.NotNil(t, call.comentario)
	assert.Equal(t, "todo en orden", *call.comentario)
	require.NotNil(t, call.adminID)
	assert.Equal(t, adminID, *call.adminID)

	assert.Equal(t, []string{"aprobada"}, mailer.statusUpdates)

	require.Len(t, published, 1)
	assert.Equal(t, uint64(91), published[0].InspectionID)
	assert.Equal(t, uint64(4), published[0].VehiculoID)
	assert.Equal(t, "aprobada", published[0].Estado)

	body := decodeBody(t, rec)
	assert.NotContains(t, body, "warning")
}

func TestUpdateStatusMailFailureIsWarning(t *testing.T) {
	store := &fakeInspections{
		notifInfo: repository.NotificationInfo{ConductorEmail: "ana@empresa.co", Placa: "ABC123"},
	}
	h := NewAdminInspectionHandler(store, &fakeMailer{ok: false}, nil)

	rec := putStatus(t, h, "91", `{"estado":"rechazada","comentario_admin":"frenos en mal estado"}`)
	require.Equal(t, http.StatusOK, rec.Code, "mail failure must not fail the review")

	require.Len(t, store.reviews, 1, "the transition must still be committed")
	body := decodeBody(t, rec)
	assert.Contains(t, body, "warning")
}

func TestUpdateStatusPublishFailureIsWarning(t *testing.T) {
	store := &fakeInspections{
		notifInfo: repository.NotificationInfo{ConductorEmail: "ana@empresa.co", Placa: "ABC123"},
	}
	publish := func(_ context.Context, _ queue.InspectionReviewedEvent) error {
		return errors.New("broker unreachable")
	}
	h := NewAdminInspectionHandler(store, &fakeMailer{ok: true}, publish)

	rec := putStatus(t, h, "91", `{"estado":"aprobada"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "warning")
}

func TestAdminDetailNotFound(t *testing.T) {
	store := &fakeInspections{detailErr: repository.ErrNotFound}
	h := NewAdminInspectionHandler(store, &fakeMailer{ok: true}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/inspections/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.Detail(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminListEmptyIsArray(t *testing.T) {
	h := NewAdminInspectionHandler(&fakeInspections{}, &fakeMailer{ok: true}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/inspections/pending", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Pending(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidbc/pesv-backend/internal/repository"
)

type fakeVehicles struct {
	rows        []repository.VehicleRow
	details     []repository.VehicleDetail
	listedTipo  string
	deactivated []uint64
}

func (f *fakeVehicles) List(_ context.Context, tipo string) ([]repository.VehicleRow, error) {
	f.listedTipo = tipo
	return f.rows, nil
}

func (f *fakeVehicles) Get(_ context.Context, id uint64) (repository.VehicleDetail, error) {
	for _, d := range f.details {
		if d.ID == id {
			return d, nil
		}
	}
	for _, v := range f.rows {
		if v.ID == id {
			return repository.VehicleDetail{VehicleRow: v}, nil
		}
	}
	return repository.VehicleDetail{}, repository.ErrNotFound
}

func (f *fakeVehicles) Deactivate(_ context.Context, id uint64) error {
	for _, v := range f.rows {
		if v.ID == id {
			f.deactivated = append(f.deactivated, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func TestVehicleListTipoFilter(t *testing.T) {
	store := &fakeVehicles{rows: []repository.VehicleRow{{ID: 4, Placa: "ABC123", TipoVehiculo: "carro"}}}
	h := NewVehicleHandler(store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/vehiculos?tipo=moto", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "moto", store.listedTipo)

	// An unknown tipo is rejected rather than silently ignored.
	reqBad := httptest.NewRequest(http.MethodGet, "/api/vehiculos?tipo=camion", nil)
	recBad := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(reqBad, recBad)))
	assert.Equal(t, http.StatusBadRequest, recBad.Code)
}

func TestVehicleGetDocumentStatus(t *testing.T) {
	soat := "2026-03-15"
	estadoSOAT := "por_vencer"
	km := 45200
	store := &fakeVehicles{details: []repository.VehicleDetail{{
		VehicleRow:           repository.VehicleRow{ID: 4, Placa: "ABC123", TipoVehiculo: "carro", Activo: true},
		Kilometraje:          &km,
		FechaVencimientoSOAT: &soat,
		EstadoSOAT:           &estadoSOAT,
	}}}
	h := NewVehicleHandler(store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/vehiculos/4", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "ABC123", body["placa"])
	assert.Equal(t, float64(45200), body["kilometraje_actual"])
	assert.Equal(t, "2026-03-15", body["fecha_vencimiento_soat"])
	assert.Equal(t, "por_vencer", body["estado_soat"])
	// Columns the migration added but nobody filled come back as null.
	assert.Nil(t, body["fecha_vencimiento_tecnomecanica"])
}

func TestVehicleDeactivate(t *testing.T) {
	store := &fakeVehicles{rows: []repository.VehicleRow{{ID: 4, Placa: "ABC123"}}}
	h := NewVehicleHandler(store)

	rec := deleteWithParam(t, h.Deactivate, "4")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint64{4}, store.deactivated)

	rec404 := deleteWithParam(t, h.Deactivate, "99")
	assert.Equal(t, http.StatusNotFound, rec404.Code)
}

func deleteWithParam(t *testing.T, h echo.HandlerFunc, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/vehiculos/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h(c))
	return rec
}

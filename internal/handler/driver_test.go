package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidbc/pesv-backend/internal/model"
	"github.com/davidbc/pesv-backend/internal/repository"
)

type fakeDrivers struct {
	drivers  []model.Driver
	vehicles []model.Vehicle
	stats    repository.Stats
	alerts   []repository.Alert
}

func (f *fakeDrivers) List(_ context.Context) ([]model.Driver, error) { return f.drivers, nil }

func (f *fakeDrivers) Get(_ context.Context, id uint64) (model.Driver, error) {
	for _, d := range f.drivers {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Driver{}, repository.ErrNotFound
}

func (f *fakeDrivers) Vehicles(_ context.Context, _ uint64) ([]model.Vehicle, error) {
	return f.vehicles, nil
}

func (f *fakeDrivers) CompanyStats(_ context.Context, _ uint64) (repository.Stats, error) {
	return f.stats, nil
}

func (f *fakeDrivers) CompanyAlerts(_ context.Context, _ uint64) ([]repository.Alert, error) {
	return f.alerts, nil
}

func getWithParam(t *testing.T, h echo.HandlerFunc, path, param, value string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if param != "" {
		c.SetParamNames(param)
		c.SetParamValues(value)
	}
	require.NoError(t, h(c))
	return rec
}

func TestDriverGet(t *testing.T) {
	h := NewDriverHandler(&fakeDrivers{drivers: []model.Driver{
		{ID: 12, Nombre: "Ana Gómez", Email: "ana@andinos.co", EmpresaNombre: "Transportes Andinos"},
	}})

	rec := getWithParam(t, h.Get, "/api/conductores/12", "id", "12")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Ana Gómez", body["nombre"])
	assert.Equal(t, "Transportes Andinos", body["empresa_nombre"])

	rec404 := getWithParam(t, h.Get, "/api/conductores/99", "id", "99")
	assert.Equal(t, http.StatusNotFound, rec404.Code)

	recBad := getWithParam(t, h.Get, "/api/conductores/abc", "id", "abc")
	assert.Equal(t, http.StatusBadRequest, recBad.Code)
}

func TestDriverStats(t *testing.T) {
	h := NewDriverHandler(&fakeDrivers{stats: repository.Stats{
		TotalConductores: 8, Capacitados: 5, Pendientes: 2, Vencidos: 1,
		LicenciasPorVencer: 3, LicenciasVencidas: 1,
	}})

	rec := getWithParam(t, h.Stats, "/api/conductores/stats/empresa/5", "id", "5")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(8), body["total_conductores"])
	assert.Equal(t, float64(3), body["licencias_por_vencer"])
}

func TestDriverAlertsEmptyIsArray(t *testing.T) {
	h := NewDriverHandler(&fakeDrivers{})
	rec := getWithParam(t, h.Alerts, "/api/conductores/alertas/empresa/5", "id", "5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String()[:2])
}

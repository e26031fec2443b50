package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fechaTest = time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

func TestNewInspectionHTMLDeepLink(t *testing.T) {
	html := newInspectionHTML("https://pesv.example.com", "Transportes Andinos",
		"ABC123", "Ana Gómez", "carro", fechaTest, 45200, "luces traseras flojas", 91)

	assert.Contains(t, html, "https://pesv.example.com/admin/inspections/91")
	assert.Contains(t, html, "Pendiente de Revisión")
	assert.Contains(t, html, "ABC123")
	assert.Contains(t, html, "Ana Gómez")
	assert.Contains(t, html, "45200 km")
	assert.Contains(t, html, "luces traseras flojas")
}

func TestNewInspectionHTMLWithoutObservations(t *testing.T) {
	html := newInspectionHTML("https://pesv.example.com", "Transportes Andinos",
		"ABC123", "Ana Gómez", "carro", fechaTest, 45200, "", 91)

	assert.NotContains(t, html, "Observaciones del Conductor")
}

func TestStatusUpdateHTMLColors(t *testing.T) {
	tests := []struct {
		estado    string
		wantColor string
	}{
		{"aprobada", "#d4edda"},
		{"rechazada", "#f8d7da"},
		{"cualquier_otro", "#f8d7da"},
	}
	for _, tc := range tests {
		t.Run(tc.estado, func(t *testing.T) {
			html := statusUpdateHTML(tc.estado, "XYZ789", "Carlos Ruiz", "revisar frenos")
			assert.Contains(t, html, tc.wantColor)
			assert.Contains(t, html, "XYZ789")
			assert.Contains(t, html, "revisar frenos")
		})
	}
}

func TestStatusUpdateHTMLUppercasesEstado(t *testing.T) {
	html := statusUpdateHTML("aprobada", "XYZ789", "Carlos Ruiz", "")
	assert.Contains(t, html, "APROBADA")
}

func TestVerificationCodeHTML(t *testing.T) {
	html := verificationCodeHTML("482913")
	assert.Contains(t, html, "482913")
	assert.Contains(t, html, "10 minutos")
}

func TestAttachmentName(t *testing.T) {
	name := AttachmentName("ABC123", fechaTest)
	assert.Equal(t, "inspeccion-ABC123-2025-06-15.pdf", name)
}

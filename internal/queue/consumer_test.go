package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReviewLine(t *testing.T) {
	ev := InspectionReviewedEvent{
		InspectionID: 91,
		VehiculoID:   4,
		Placa:        "ABC123",
		ConductorID:  12,
		Conductor:    "Ana Gómez",
		AdminID:      2,
		Estado:       "aprobada",
		Comentario:   "todo en orden",
		ReviewedAt:   "2025-06-15T09:00:00Z",
	}
	line := formatReviewLine(ev)
	assert.Equal(t,
		"[2025-06-15T09:00:00Z] Inspección revisada | inspection_id=91 | placa=ABC123 | conductor_id=12 | conductor=\"Ana Gómez\" | admin_id=2 | estado=aprobada | comentario=\"todo en orden\"\n",
		line)
}

func TestFormatReviewLineEmptyComment(t *testing.T) {
	line := formatReviewLine(InspectionReviewedEvent{
		InspectionID: 7, Placa: "XYZ789", Estado: "rechazada", ReviewedAt: "2025-06-15T09:00:00Z",
	})
	assert.Contains(t, line, "comentario=\"-\"")
	assert.Contains(t, line, "estado=rechazada")
}

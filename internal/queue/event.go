// Package queue defines message payloads exchanged over the message broker.
package queue

// InspectionReviewedEvent is published when an admin approves or rejects a
// pre-operational inspection.  It carries enough context for downstream
// consumers to build an audit trail without querying the primary database.
type InspectionReviewedEvent struct {
	InspectionID uint64 `json:"inspection_id"`
	VehiculoID   uint64 `json:"vehiculo_id"`
	Placa        string `json:"placa"`
	ConductorID  uint64 `json:"conductor_id"`
	Conductor    string `json:"conductor"`
	AdminID      uint64 `json:"admin_id"`
	Estado       string `json:"estado"`
	Comentario   string `json:"comentario,omitempty"`
	ReviewedAt   string `json:"reviewed_at"`
}

package model

import "time"

// Inspection status values.  A row is born `pendiente` and is moved exactly
// once to `aprobada` or `rechazada` by an admin review; there is no
// transition out of a reviewed state.
const (
	InspeccionPendiente = "pendiente"
	InspeccionAprobada  = "aprobada"
	InspeccionRechazada = "rechazada"
)

// Inspection represents a row of the `inspecciones_preoperacionales` table.
// The checklist results arrive from the client as a free-form JSON object
// and are stored verbatim in a JSON column; the signature image and the
// client-rendered PDF are stored as base64 text.
//
// Fields:
//
//	ID               – primary key.
//	VehiculoID       – inspected vehicle.
//	ConductorID      – submitting driver.
//	FechaInspeccion  – datetime the inspection was performed.
//	Kilometraje      – odometer reading at inspection time.
//	TipoVehiculo     – 'carro' or 'moto'; selects the checklist layout.
//	Resultados       – raw JSON checklist blob.
//	FirmaBase64      – signature image data URI.
//	PDFBase64        – client-rendered PDF document.
//	Observaciones    – free text from the driver, later appended to by the
//	                   legacy status endpoint.
//	Estado           – pendiente|aprobada|rechazada.
//	ComentarioAdmin  – reviewer comment (nullable).
//	AdminID          – reviewing admin (nullable).
//	FechaRevision    – server-generated review timestamp (nullable).
type Inspection struct {
	ID              uint64     // inspecciones_preoperacionales.id
	VehiculoID      uint64     // inspecciones_preoperacionales.vehiculo_id
	ConductorID     uint64     // inspecciones_preoperacionales.conductor_id
	FechaInspeccion time.Time  // inspecciones_preoperacionales.fecha_inspeccion
	Kilometraje     int        // inspecciones_preoperacionales.kilometraje
	TipoVehiculo    string     // inspecciones_preoperacionales.tipo_vehiculo
	Resultados      string     // inspecciones_preoperacionales.resultados (JSON text)
	FirmaBase64     string     // inspecciones_preoperacionales.firma_base64
	PDFBase64       string     // inspecciones_preoperacionales.pdf_base64
	Observaciones   *string    // inspecciones_preoperacionales.observaciones
	Estado          string     // inspecciones_preoperacionales.estado
	ComentarioAdmin *string    // inspecciones_preoperacionales.comentario_admin
	AdminID         *uint64    // inspecciones_preoperacionales.admin_id
	FechaRevision   *time.Time // inspecciones_preoperacionales.fecha_revision
}

// ReviewableEstado reports whether estado is a value an admin review may
// set.  The initial pendiente state is never client-selectable.
func ReviewableEstado(estado string) bool {
	return estado == InspeccionAprobada || estado == InspeccionRechazada
}

package model

// Vehicle represents a row of the `vehiculos` table.  A vehicle belongs to
// a driver (usuario_id) and transitively to that driver's company.  Vehicles
// are never hard-deleted; decommissioned units are flipped to activo=0 so
// historical inspections keep their foreign keys.
//
// The maintenance and document-expiry columns the fleet migration adds are
// read through the vehicle detail view, not this struct.
type Vehicle struct {
	ID           uint64 // vehiculos.id
	UsuarioID    uint64 // vehiculos.usuario_id (owning driver)
	Placa        string // vehiculos.placa
	Marca        string // vehiculos.marca
	Modelo       string // vehiculos.modelo
	TipoVehiculo string // vehiculos.tipo_vehiculo ('carro'|'moto')
	Activo       bool   // vehiculos.activo
}

// Vehicle type values stored in vehiculos.tipo_vehiculo.
const (
	VehiculoCarro = "carro"
	VehiculoMoto  = "moto"
)

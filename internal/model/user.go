package model

import "time"

// User represents a row of the `usuarios` table.  The table carries both
// company administrators and drivers; the driver-specific PESV fields are
// nullable because they were added by a later migration and only carry
// meaning for rows with the conductor role.
//
// Fields:
//
//	ID            – primary key identifier of the user.
//	EmpresaID     – owning company (nil for superadmin accounts).
//	Nombre        – full name.
//	Identificacion – national id number.
//	Telefono      – contact phone.
//	Email         – unique email address, used for login.
//	PasswordHash  – bcrypt hashed password (column `password`).
//	RolID         – foreign key into the roles table.
//	Rol           – role name, populated when the query joins roles.
//	Estado        – account status (e.g. "activo").
//	UltimoAcceso  – last login timestamp (nullable).
type User struct {
	ID             uint64     // usuarios.id
	EmpresaID      *uint64    // usuarios.empresa_id (nullable)
	Nombre         string     // usuarios.nombre
	Identificacion string     // usuarios.identificacion
	Telefono       string     // usuarios.telefono
	Email          string     // usuarios.email
	PasswordHash   string     // usuarios.password
	RolID          uint8      // usuarios.rol_id (references roles.id)
	Rol            string     // roles.nombre when joined
	Estado         string     // usuarios.estado
	UltimoAcceso   *time.Time // usuarios.ultimo_acceso (nullable)
	CreatedAt      time.Time  // usuarios.created_at
}

// Driver extends User with the PESV compliance fields tracked for the
// conductor role.  License and training dates drive the expiry alerts on
// the company dashboard.
type Driver struct {
	ID                       uint64     // usuarios.id
	Nombre                   string     // usuarios.nombre
	Identificacion           string     // usuarios.identificacion
	Telefono                 string     // usuarios.telefono
	Email                    string     // usuarios.email
	NumeroLicencia           *string    // usuarios.numero_licencia (nullable, unique)
	CategoriaLicencia        *string    // usuarios.categoria_licencia
	FechaVencimientoLicencia *time.Time // usuarios.fecha_vencimiento_licencia
	FechaIngresoEmpresa      *time.Time // usuarios.fecha_ingreso_empresa
	EstadoCapacitacionPESV   string     // usuarios.estado_capacitacion_pesv
	FechaUltimaCapacitacion  *time.Time // usuarios.fecha_ultima_capacitacion
	FechaProximaCapacitacion *time.Time // usuarios.fecha_proxima_capacitacion
	Estado                   string     // usuarios.estado
	EmpresaNombre            string     // empresa.nombre when joined
}

// Role represents a row in the `roles` table.  Seeded once by the
// migration layer: superadmin=1, admin_empresa=2, conductor=3.
type Role struct {
	ID          uint8  // roles.id
	Nombre      string // roles.nombre
	Descripcion string // roles.descripcion
}

// Training status values stored in usuarios.estado_capacitacion_pesv.
const (
	CapacitacionPendiente  = "pendiente"
	CapacitacionEnProceso  = "en_proceso"
	CapacitacionCompletada = "completada"
	CapacitacionVencida    = "vencida"
)

// Role ids as seeded by the migrations.
const (
	RolSuperadmin   uint8 = 1
	RolAdminEmpresa uint8 = 2
	RolConductor    uint8 = 3
)

// Permission codes as seeded into the permisos table.
const (
	PermRevisarInspecciones = "inspecciones.revisar"
	PermCrearInspecciones   = "inspecciones.crear"
	PermVerConductores      = "conductores.ver"
)

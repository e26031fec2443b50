package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/davidbc/pesv-backend/internal/model"
)

// DriverRepo serves the conductor-facing queries: registration, listings,
// fleet stats and the compliance alerts used by the company dashboard.
type DriverRepo struct{ DB *sql.DB }

func NewDriverRepo(db *sql.DB) *DriverRepo { return &DriverRepo{DB: db} }

// DriverRegistration carries the fields of a driver + vehicle onboarding.
type DriverRegistration struct {
	EmpresaID      uint64
	Nombre         string
	Identificacion string
	Telefono       string
	Email          string
	PasswordHash   string
	Placa          string
	Marca          string
	Modelo         string
	TipoVehiculo   string
}

// RegisterDriver inserts the conductor usuario (rol_id=3) and its vehicle
// in one transaction, returning the new driver id.  Rolls back on any
// failure; a duplicate email maps to ErrEmailExists.
func (r *DriverRepo) RegisterDriver(ctx context.Context, reg DriverRegistration) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO usuarios (empresa_id, nombre, identificacion, telefono, email, password, rol_id) VALUES (?,?,?,?,?,?,?)",
		reg.EmpresaID, reg.Nombre, reg.Identificacion, reg.Telefono,
		strings.ToLower(strings.TrimSpace(reg.Email)), reg.PasswordHash, model.RolConductor)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	conductorID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO vehiculos (usuario_id, empresa_id, placa, marca, modelo, tipo_vehiculo) VALUES (?,?,?,?,?,?)",
		conductorID, reg.EmpresaID, strings.ToUpper(strings.TrimSpace(reg.Placa)),
		reg.Marca, reg.Modelo, reg.TipoVehiculo)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(conductorID), nil
}

const driverColumns = `u.id, u.nombre, u.identificacion, u.telefono, u.email,
	u.numero_licencia, u.categoria_licencia, u.fecha_vencimiento_licencia,
	u.fecha_ingreso_empresa, u.estado_capacitacion_pesv,
	u.fecha_ultima_capacitacion, u.fecha_proxima_capacitacion,
	u.estado, e.nombre`

func scanDriver(scan func(dest ...any) error) (model.Driver, error) {
	var (
		d                model.Driver
		ident, tel       sql.NullString
		lic, cat, estado sql.NullString
		capEstado        sql.NullString
		venc, ingreso    sql.NullTime
		ultima, proxima  sql.NullTime
	)
	err := scan(&d.ID, &d.Nombre, &ident, &tel, &d.Email,
		&lic, &cat, &venc, &ingreso, &capEstado, &ultima, &proxima,
		&estado, &d.EmpresaNombre)
	if err != nil {
		return model.Driver{}, err
	}
	d.Identificacion = ident.String
	d.Telefono = tel.String
	d.Estado = estado.String
	d.EstadoCapacitacionPESV = capEstado.String
	if lic.Valid {
		d.NumeroLicencia = &lic.String
	}
	if cat.Valid {
		d.CategoriaLicencia = &cat.String
	}
	if venc.Valid {
		d.FechaVencimientoLicencia = &venc.Time
	}
	if ingreso.Valid {
		d.FechaIngresoEmpresa = &ingreso.Time
	}
	if ultima.Valid {
		d.FechaUltimaCapacitacion = &ultima.Time
	}
	if proxima.Valid {
		d.FechaProximaCapacitacion = &proxima.Time
	}
	return d, nil
}

// List returns every conductor joined with its company, ordered by name.
func (r *DriverRepo) List(ctx context.Context) ([]model.Driver, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+driverColumns+` FROM usuarios u
		 JOIN empresa e ON u.empresa_id = e.empresa_id
		 WHERE u.rol_id = ? ORDER BY u.nombre`, model.RolConductor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Driver
	for rows.Next() {
		d, err := scanDriver(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Get returns one conductor by id, or ErrNotFound.
func (r *DriverRepo) Get(ctx context.Context, id uint64) (model.Driver, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+driverColumns+` FROM usuarios u
		 JOIN empresa e ON u.empresa_id = e.empresa_id
		 WHERE u.id = ? AND u.rol_id = ?`, id, model.RolConductor)
	d, err := scanDriver(row.Scan)
	if err == sql.ErrNoRows {
		return model.Driver{}, ErrNotFound
	}
	if err != nil {
		return model.Driver{}, err
	}
	return d, nil
}

// Vehicles lists a driver's vehicles ordered by type then plate.
func (r *DriverRepo) Vehicles(ctx context.Context, driverID uint64) ([]model.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT v.id, v.placa, v.marca, v.modelo, v.tipo_vehiculo, v.activo
		 FROM vehiculos v WHERE v.usuario_id = ?
		 ORDER BY v.tipo_vehiculo, v.placa`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		var marca, modelo sql.NullString
		if err := rows.Scan(&v.ID, &v.Placa, &marca, &modelo, &v.TipoVehiculo, &v.Activo); err != nil {
			return nil, err
		}
		v.Marca = marca.String
		v.Modelo = modelo.String
		v.UsuarioID = driverID
		out = append(out, v)
	}
	return out, rows.Err()
}

// Stats aggregates driver compliance counters for one company.
type Stats struct {
	TotalConductores   int `json:"total_conductores"`
	Capacitados        int `json:"capacitados"`
	Pendientes         int `json:"pendientes"`
	Vencidos           int `json:"vencidos"`
	LicenciasPorVencer int `json:"licencias_por_vencer"`
	LicenciasVencidas  int `json:"licencias_vencidas"`
}

// CompanyStats counts training statuses and license expiries (30-day
// warning window) over a company's drivers.
func (r *DriverRepo) CompanyStats(ctx context.Context, empresaID uint64) (Stats, error) {
	var s Stats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN u.estado_capacitacion_pesv = 'completada' THEN 1 END),
			COUNT(CASE WHEN u.estado_capacitacion_pesv = 'pendiente' THEN 1 END),
			COUNT(CASE WHEN u.estado_capacitacion_pesv = 'vencida' THEN 1 END),
			COUNT(CASE WHEN u.fecha_vencimiento_licencia <= DATE_ADD(CURDATE(), INTERVAL 30 DAY) THEN 1 END),
			COUNT(CASE WHEN u.fecha_vencimiento_licencia < CURDATE() THEN 1 END)
		FROM usuarios u
		WHERE u.empresa_id = ? AND u.rol_id = ?`, empresaID, model.RolConductor).
		Scan(&s.TotalConductores, &s.Capacitados, &s.Pendientes, &s.Vencidos,
			&s.LicenciasPorVencer, &s.LicenciasVencidas)
	return s, err
}

// Alert is one row of the compliance alert list: a driver whose license or
// training needs attention inside the 30-day window.
type Alert struct {
	ID                       uint64  `json:"id"`
	Nombre                   string  `json:"nombre"`
	NumeroLicencia           *string `json:"numero_licencia"`
	FechaVencimientoLicencia *string `json:"fecha_vencimiento_licencia"`
	EstadoCapacitacionPESV   string  `json:"estado_capacitacion_pesv"`
	FechaProximaCapacitacion *string `json:"fecha_proxima_capacitacion"`
	DiasLicencia             *int    `json:"dias_licencia"`
	DiasCapacitacion         *int    `json:"dias_capacitacion"`
}

// CompanyAlerts lists a company's drivers with expiring licenses, pending
// or expired training, or an upcoming training date, soonest expiry first.
func (r *DriverRepo) CompanyAlerts(ctx context.Context, empresaID uint64) ([]Alert, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.nombre, u.numero_licencia,
			DATE_FORMAT(u.fecha_vencimiento_licencia, '%Y-%m-%d'),
			u.estado_capacitacion_pesv,
			DATE_FORMAT(u.fecha_proxima_capacitacion, '%Y-%m-%d'),
			DATEDIFF(u.fecha_vencimiento_licencia, CURDATE()),
			DATEDIFF(u.fecha_proxima_capacitacion, CURDATE())
		FROM usuarios u
		WHERE u.empresa_id = ?
		AND u.rol_id = ?
		AND (
			u.fecha_vencimiento_licencia <= DATE_ADD(CURDATE(), INTERVAL 30 DAY)
			OR u.estado_capacitacion_pesv IN ('pendiente', 'vencida')
			OR u.fecha_proxima_capacitacion <= DATE_ADD(CURDATE(), INTERVAL 30 DAY)
		)
		ORDER BY u.fecha_vencimiento_licencia ASC`, empresaID, model.RolConductor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Alert
	for rows.Next() {
		var (
			a          Alert
			lic        sql.NullString
			venc, prox sql.NullString
			capEst     sql.NullString
			dl, dc     sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.Nombre, &lic, &venc, &capEst, &prox, &dl, &dc); err != nil {
			return nil, err
		}
		if lic.Valid {
			a.NumeroLicencia = &lic.String
		}
		if venc.Valid {
			a.FechaVencimientoLicencia = &venc.String
		}
		if prox.Valid {
			a.FechaProximaCapacitacion = &prox.String
		}
		a.EstadoCapacitacionPESV = capEst.String
		if dl.Valid {
			n := int(dl.Int64)
			a.DiasLicencia = &n
		}
		if dc.Valid {
			n := int(dc.Int64)
			a.DiasCapacitacion = &n
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

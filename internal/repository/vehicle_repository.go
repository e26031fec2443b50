package repository

import (
	"context"
	"database/sql"
)

// VehicleRepo serves the read-only fleet views.  Writes happen through the
// driver registration transaction; decommissioning flips activo instead of
// deleting, so inspection history keeps its foreign keys.
type VehicleRepo struct{ DB *sql.DB }

func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{DB: db} }

// VehicleRow is a fleet listing entry with the owning driver joined in.
type VehicleRow struct {
	ID              uint64 `json:"id"`
	Placa           string `json:"placa"`
	Marca           string `json:"marca"`
	Modelo          string `json:"modelo"`
	TipoVehiculo    string `json:"tipo_vehiculo"`
	Activo          bool   `json:"activo"`
	ConductorNombre string `json:"conductor_nombre"`
	ConductorID     uint64 `json:"conductor_id"`
}

func scanVehicleRow(scan func(dest ...any) error) (VehicleRow, error) {
	var (
		v             VehicleRow
		marca, modelo sql.NullString
	)
	err := scan(&v.ID, &v.Placa, &marca, &modelo, &v.TipoVehiculo, &v.Activo,
		&v.ConductorNombre, &v.ConductorID)
	if err != nil {
		return VehicleRow{}, err
	}
	v.Marca = marca.String
	v.Modelo = modelo.String
	return v, nil
}

// List returns active vehicles joined with their driver, optionally
// filtered by tipo_vehiculo, ordered by type then plate.
func (r *VehicleRepo) List(ctx context.Context, tipo string) ([]VehicleRow, error) {
	query := `SELECT v.id, v.placa, v.marca, v.modelo, v.tipo_vehiculo, v.activo,
		u.nombre, u.id
		FROM vehiculos v
		JOIN usuarios u ON v.usuario_id = u.id
		WHERE v.activo = 1`
	args := []any{}
	if tipo != "" {
		query += " AND v.tipo_vehiculo = ?"
		args = append(args, tipo)
	}
	query += " ORDER BY v.tipo_vehiculo, v.placa"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VehicleRow
	for rows.Next() {
		v, err := scanVehicleRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// VehicleDetail is the single-vehicle view.  On top of the listing fields it
// carries the maintenance and document-expiry columns added by the fleet
// migration, all nullable on rows that predate it.  Dates are formatted in
// SQL so the JSON carries plain YYYY-MM-DD values.
type VehicleDetail struct {
	VehicleRow
	Anio                    *int    `json:"anio"`
	Kilometraje             *int    `json:"kilometraje_actual"`
	FechaVencimientoTecnico *string `json:"fecha_vencimiento_tecnomecanica"`
	EstadoTecnomecanica     *string `json:"estado_tecnomecanica"`
	FechaVencimientoSOAT    *string `json:"fecha_vencimiento_soat"`
	EstadoSOAT              *string `json:"estado_soat"`
	FechaVencimientoSeguro  *string `json:"fecha_vencimiento_seguro"`
	EstadoSeguro            *string `json:"estado_seguro"`
}

// Get returns one vehicle with its driver and document status, or
// ErrNotFound.  Unlike List it does not filter on activo so historical units
// stay reachable by id.
func (r *VehicleRepo) Get(ctx context.Context, id uint64) (VehicleDetail, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT v.id, v.placa, v.marca, v.modelo, v.tipo_vehiculo, v.activo,
			u.nombre, u.id,
			v.anio, v.kilometraje_actual,
			DATE_FORMAT(v.fecha_vencimiento_tecnomecanica, '%Y-%m-%d'),
			v.estado_tecnomecanica,
			DATE_FORMAT(v.fecha_vencimiento_soat, '%Y-%m-%d'),
			v.estado_soat,
			DATE_FORMAT(v.fecha_vencimiento_seguro, '%Y-%m-%d'),
			v.estado_seguro
		 FROM vehiculos v
		 JOIN usuarios u ON v.usuario_id = u.id
		 WHERE v.id = ?`, id)

	var (
		d             VehicleDetail
		marca, modelo sql.NullString
	)
	err := row.Scan(&d.ID, &d.Placa, &marca, &modelo, &d.TipoVehiculo, &d.Activo,
		&d.ConductorNombre, &d.ConductorID,
		&d.Anio, &d.Kilometraje,
		&d.FechaVencimientoTecnico, &d.EstadoTecnomecanica,
		&d.FechaVencimientoSOAT, &d.EstadoSOAT,
		&d.FechaVencimientoSeguro, &d.EstadoSeguro)
	if err == sql.ErrNoRows {
		return VehicleDetail{}, ErrNotFound
	}
	if err != nil {
		return VehicleDetail{}, err
	}
	d.Marca = marca.String
	d.Modelo = modelo.String
	return d, nil
}

// Deactivate soft-deletes a vehicle by clearing its activo flag.
func (r *VehicleRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE vehiculos SET activo = 0 WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/davidbc/pesv-backend/internal/model"
)

// InspectionRepo persists pre-operational inspections and their review
// lifecycle.  Filtered listings build their WHERE clause dynamically from
// the supplied filter, always parameterized.
type InspectionRepo struct{ DB *sql.DB }

func NewInspectionRepo(db *sql.DB) *InspectionRepo { return &InspectionRepo{DB: db} }

// Create inserts a new inspection.  The estado column is always written as
// 'pendiente' here; whatever the client sent never reaches the query.
func (r *InspectionRepo) Create(ctx context.Context, ins *model.Inspection) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO inspecciones_preoperacionales
			(vehiculo_id, conductor_id, fecha_inspeccion, kilometraje,
			 tipo_vehiculo, resultados, firma_base64, pdf_base64,
			 observaciones, estado)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'pendiente')`,
		ins.VehiculoID, ins.ConductorID, ins.FechaInspeccion, ins.Kilometraje,
		ins.TipoVehiculo, ins.Resultados, nullIfEmpty(ins.FirmaBase64),
		nullIfEmpty(ins.PDFBase64), ins.Observaciones)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	ins.ID = uint64(id)
	ins.Estado = model.InspeccionPendiente
	return ins.ID, nil
}

// Filter narrows inspection listings.  Zero values mean "no constraint".
type Filter struct {
	Estado       string
	TipoVehiculo string
	EmpresaID    uint64
	FechaInicio  string // YYYY-MM-DD, inclusive lower bound on fecha_inspeccion
	FechaFin     string // YYYY-MM-DD, inclusive upper bound
}

// ListRow is a listing entry with the display fields joined in.
type ListRow struct {
	ID              uint64     `json:"id"`
	FechaInspeccion time.Time  `json:"fecha_inspeccion"`
	Kilometraje     int        `json:"kilometraje"`
	TipoVehiculo    string     `json:"tipo_vehiculo"`
	Estado          string     `json:"estado"`
	Observaciones   *string    `json:"observaciones"`
	CreatedAt       time.Time  `json:"created_at"`
	FechaRevision   *time.Time `json:"fecha_revision,omitempty"`
	Placa           string     `json:"placa"`
	Marca           string     `json:"marca,omitempty"`
	Modelo          string     `json:"modelo,omitempty"`
	ConductorNombre string     `json:"conductor_nombre"`
	ConductorEmail  string     `json:"conductor_email,omitempty"`
	ConductorIdent  string     `json:"conductor_identificacion,omitempty"`
	EmpresaNombre   string     `json:"empresa_nombre,omitempty"`
	EmpresaID       uint64     `json:"empresa_id,omitempty"`
}

// ListByCompany returns a company's inspections joined with vehicle and
// driver display fields, most recent inspection date first.
func (r *InspectionRepo) ListByCompany(ctx context.Context, empresaID uint64, f Filter) ([]ListRow, error) {
	query := `
		SELECT i.id, i.fecha_inspeccion, i.kilometraje, i.tipo_vehiculo,
			i.estado, i.observaciones, i.created_at,
			v.placa, v.marca, v.modelo,
			u.nombre, u.identificacion
		FROM inspecciones_preoperacionales i
		JOIN vehiculos v ON i.vehiculo_id = v.id
		JOIN usuarios u ON i.conductor_id = u.id
		WHERE v.empresa_id = ?`
	args := []any{empresaID}
	if f.Estado != "" {
		query += " AND i.estado = ?"
		args = append(args, f.Estado)
	}
	if f.TipoVehiculo != "" {
		query += " AND i.tipo_vehiculo = ?"
		args = append(args, f.TipoVehiculo)
	}
	if f.FechaInicio != "" {
		query += " AND i.fecha_inspeccion >= ?"
		args = append(args, f.FechaInicio)
	}
	if f.FechaFin != "" {
		query += " AND i.fecha_inspeccion <= ?"
		args = append(args, f.FechaFin)
	}
	query += " ORDER BY i.fecha_inspeccion DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var (
			row           ListRow
			kil           sql.NullInt64
			obs           sql.NullString
			marca, modelo sql.NullString
			ident         sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.FechaInspeccion, &kil, &row.TipoVehiculo,
			&row.Estado, &obs, &row.CreatedAt,
			&row.Placa, &marca, &modelo, &row.ConductorNombre, &ident); err != nil {
			return nil, err
		}
		row.Kilometraje = int(kil.Int64)
		if obs.Valid {
			row.Observaciones = &obs.String
		}
		row.Marca = marca.String
		row.Modelo = modelo.String
		row.ConductorIdent = ident.String
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListAdmin returns inspections across companies for the admin console,
// joined with vehicle, driver and company, newest creation first.  When
// f.Estado is model.InspeccionPendiente this doubles as the pending queue.
func (r *InspectionRepo) ListAdmin(ctx context.Context, f Filter) ([]ListRow, error) {
	query := `
		SELECT i.id, i.fecha_inspeccion, i.kilometraje, i.tipo_vehiculo,
			i.estado, i.observaciones, i.created_at, i.fecha_revision,
			v.placa, c.nombre, c.email, e.nombre, e.empresa_id
		FROM inspecciones_preoperacionales i
		JOIN vehiculos v ON i.vehiculo_id = v.id
		JOIN usuarios c ON i.conductor_id = c.id
		JOIN empresa e ON c.empresa_id = e.empresa_id
		WHERE 1=1`
	args := []any{}
	if f.Estado != "" {
		query += " AND i.estado = ?"
		args = append(args, f.Estado)
	}
	if f.EmpresaID != 0 {
		query += " AND e.empresa_id = ?"
		args = append(args, f.EmpresaID)
	}
	if f.FechaInicio != "" {
		query += " AND i.fecha_inspeccion >= ?"
		args = append(args, f.FechaInicio)
	}
	if f.FechaFin != "" {
		query += " AND i.fecha_inspeccion <= ?"
		args = append(args, f.FechaFin)
	}
	query += " ORDER BY i.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var (
			row ListRow
			kil sql.NullInt64
			obs sql.NullString
			rev sql.NullTime
		)
		if err := rows.Scan(&row.ID, &row.FechaInspeccion, &kil, &row.TipoVehiculo,
			&row.Estado, &obs, &row.CreatedAt, &rev,
			&row.Placa, &row.ConductorNombre, &row.ConductorEmail,
			&row.EmpresaNombre, &row.EmpresaID); err != nil {
			return nil, err
		}
		row.Kilometraje = int(kil.Int64)
		if obs.Valid {
			row.Observaciones = &obs.String
		}
		if rev.Valid {
			row.FechaRevision = &rev.Time
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Detail is the full inspection record for the review screen, resultados
// parsed back into an object.
type Detail struct {
	ID              uint64          `json:"id"`
	VehiculoID      uint64          `json:"vehiculo_id"`
	ConductorID     uint64          `json:"conductor_id"`
	FechaInspeccion time.Time       `json:"fecha_inspeccion"`
	Kilometraje     int             `json:"kilometraje"`
	TipoVehiculo    string          `json:"tipo_vehiculo"`
	Resultados      json.RawMessage `json:"resultados"`
	FirmaBase64     *string         `json:"firma_base64"`
	PDFBase64       *string         `json:"pdf_base64"`
	Observaciones   *string         `json:"observaciones"`
	Estado          string          `json:"estado"`
	ComentarioAdmin *string         `json:"comentario_admin"`
	AdminID         *uint64         `json:"admin_id"`
	FechaRevision   *time.Time      `json:"fecha_revision"`
	CreatedAt       time.Time       `json:"created_at"`
	Placa           string          `json:"placa"`
	ConductorNombre string          `json:"conductor_nombre"`
	ConductorEmail  string          `json:"conductor_email"`
	EmpresaNombre   string          `json:"empresa_nombre"`
}

// GetDetail loads one inspection with its joined display fields, or
// ErrNotFound.  A resultados blob that fails to parse degrades to an empty
// object instead of failing the request.
func (r *InspectionRepo) GetDetail(ctx context.Context, id uint64) (Detail, error) {
	var (
		d          Detail
		kil        sql.NullInt64
		resultados sql.NullString
		firma, pdf sql.NullString
		obs, com   sql.NullString
		adminID    sql.NullInt64
		rev        sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT i.id, i.vehiculo_id, i.conductor_id, i.fecha_inspeccion,
			i.kilometraje, i.tipo_vehiculo, i.resultados, i.firma_base64,
			i.pdf_base64, i.observaciones, i.estado, i.comentario_admin,
			i.admin_id, i.fecha_revision, i.created_at,
			v.placa, c.nombre, c.email, e.nombre
		FROM inspecciones_preoperacionales i
		JOIN vehiculos v ON i.vehiculo_id = v.id
		JOIN usuarios c ON i.conductor_id = c.id
		JOIN empresa e ON c.empresa_id = e.empresa_id
		WHERE i.id = ?`, id).
		Scan(&d.ID, &d.VehiculoID, &d.ConductorID, &d.FechaInspeccion,
			&kil, &d.TipoVehiculo, &resultados, &firma, &pdf, &obs,
			&d.Estado, &com, &adminID, &rev, &d.CreatedAt,
			&d.Placa, &d.ConductorNombre, &d.ConductorEmail, &d.EmpresaNombre)
	if err == sql.ErrNoRows {
		return Detail{}, ErrNotFound
	}
	if err != nil {
		return Detail{}, err
	}
	d.Kilometraje = int(kil.Int64)
	if resultados.Valid && json.Valid([]byte(resultados.String)) {
		d.Resultados = json.RawMessage(resultados.String)
	} else {
		d.Resultados = json.RawMessage("{}")
	}
	if firma.Valid {
		d.FirmaBase64 = &firma.String
	}
	if pdf.Valid {
		d.PDFBase64 = &pdf.String
	}
	if obs.Valid {
		d.Observaciones = &obs.String
	}
	if com.Valid {
		d.ComentarioAdmin = &com.String
	}
	if adminID.Valid {
		aid := uint64(adminID.Int64)
		d.AdminID = &aid
	}
	if rev.Valid {
		d.FechaRevision = &rev.Time
	}
	return d, nil
}

// Review applies the one-shot admin transition.  estado must already be
// validated by the caller; the WHERE clause only matches rows still in
// pendiente, so a second review of the same inspection returns
// ErrAlreadyReviewed and a missing id returns ErrNotFound.
func (r *InspectionRepo) Review(ctx context.Context, id uint64, estado string, comentario *string, adminID *uint64) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE inspecciones_preoperacionales
		SET estado = ?, comentario_admin = ?, admin_id = ?, fecha_revision = NOW()
		WHERE id = ? AND estado = 'pendiente'`,
		estado, comentario, adminID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such row" from "already reviewed".
		var estadoActual string
		err := r.DB.QueryRowContext(ctx,
			"SELECT estado FROM inspecciones_preoperacionales WHERE id = ?", id).
			Scan(&estadoActual)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrAlreadyReviewed
	}
	return nil
}

// AppendStatus is the legacy transition kept for the older clients: it
// writes whatever estado string it is given and concatenates the comment
// onto observaciones instead of touching comentario_admin.
func (r *InspectionRepo) AppendStatus(ctx context.Context, id uint64, estado, comentario string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE inspecciones_preoperacionales
		SET estado = ?,
			observaciones = CASE
				WHEN observaciones IS NULL OR observaciones = ''
				THEN ?
				ELSE CONCAT(observaciones, '\n', ?)
			END
		WHERE id = ?`, estado, comentario, comentario, id)
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

// NotificationInfo is the recipient data for the status-update email.
type NotificationInfo struct {
	VehiculoID      uint64
	ConductorID     uint64
	Placa           string
	ConductorNombre string
	ConductorEmail  string
	EmpresaNombre   string
}

// GetNotificationInfo resolves the driver contact for an inspection's
// status-change notification.
func (r *InspectionRepo) GetNotificationInfo(ctx context.Context, id uint64) (NotificationInfo, error) {
	var info NotificationInfo
	err := r.DB.QueryRowContext(ctx, `
		SELECT i.vehiculo_id, i.conductor_id, v.placa, c.nombre, c.email, e.nombre
		FROM inspecciones_preoperacionales i
		JOIN vehiculos v ON i.vehiculo_id = v.id
		JOIN usuarios c ON i.conductor_id = c.id
		JOIN empresa e ON c.empresa_id = e.empresa_id
		WHERE i.id = ?`, id).
		Scan(&info.VehiculoID, &info.ConductorID, &info.Placa,
			&info.ConductorNombre, &info.ConductorEmail, &info.EmpresaNombre)
	if err == sql.ErrNoRows {
		return NotificationInfo{}, ErrNotFound
	}
	if err != nil {
		return NotificationInfo{}, err
	}
	return info, nil
}

// nullIfEmpty maps "" to NULL for the LONGTEXT base64 columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

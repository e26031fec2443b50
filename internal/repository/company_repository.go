package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/davidbc/pesv-backend/internal/model"
)

// CompanyRepo handles empresa rows and the transactional registration
// flows.  Company+admin and driver+vehicle registration are the only
// multi-statement writes in the system that must be atomic; both run inside
// an explicit transaction and roll back on any step's failure.
type CompanyRepo struct{ DB *sql.DB }

func NewCompanyRepo(db *sql.DB) *CompanyRepo { return &CompanyRepo{DB: db} }

// AdminRegistration carries the admin-user half of a company registration.
type AdminRegistration struct {
	Nombre         string
	Identificacion string
	Telefono       string
	Email          string
	PasswordHash   string
}

// RegisterCompany inserts the empresa row and its admin usuario (rol_id=2)
// in one transaction and returns the new company id.  A duplicate admin
// email maps to ErrEmailExists; every other failure is returned verbatim so
// the handler can surface the driver detail.
func (r *CompanyRepo) RegisterCompany(ctx context.Context, c model.Company, admin AdminRegistration) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO empresa (nombre, nit, direccion, telefono, email) VALUES (?,?,?,?,?)",
		c.Nombre, c.NIT, c.Direccion, c.Telefono, c.Email)
	if err != nil {
		return 0, err
	}
	empresaID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO usuarios (empresa_id, nombre, identificacion, telefono, email, password, rol_id) VALUES (?,?,?,?,?,?,?)",
		empresaID, admin.Nombre, admin.Identificacion, admin.Telefono,
		strings.ToLower(strings.TrimSpace(admin.Email)), admin.PasswordHash, model.RolAdminEmpresa)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(empresaID), nil
}

// AdminContact is the recipient data for the "new inspection" notification.
type AdminContact struct {
	AdminEmail      string
	EmpresaNombre   string
	Placa           string
	ConductorNombre string
}

// AdminContactForVehicle resolves the company admin that should be notified
// when an inspection is filed for the given vehicle.  Walks vehicle ->
// driver -> company -> admin user (rol_id=2).
func (r *CompanyRepo) AdminContactForVehicle(ctx context.Context, vehiculoID uint64) (AdminContact, error) {
	var info AdminContact
	err := r.DB.QueryRowContext(ctx, `
		SELECT u.email, e.nombre, v.placa, c.nombre
		FROM vehiculos v
		JOIN usuarios c ON v.usuario_id = c.id
		JOIN empresa e ON c.empresa_id = e.empresa_id
		JOIN usuarios u ON u.empresa_id = e.empresa_id AND u.rol_id = ?
		WHERE v.id = ?
		LIMIT 1`, model.RolAdminEmpresa, vehiculoID).
		Scan(&info.AdminEmail, &info.EmpresaNombre, &info.Placa, &info.ConductorNombre)
	if err == sql.ErrNoRows {
		return AdminContact{}, ErrNotFound
	}
	if err != nil {
		return AdminContact{}, err
	}
	return info, nil
}

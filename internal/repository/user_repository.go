package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/davidbc/pesv-backend/internal/model"
)

// UserRepo provides lookups and mutations on the usuarios table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `u.id, u.empresa_id, u.nombre, u.identificacion, u.telefono,
	u.email, u.password, u.rol_id, r.nombre, u.estado, u.ultimo_acceso`

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u       model.User
		empresa sql.NullInt64
		ident   sql.NullString
		tel     sql.NullString
		acceso  sql.NullTime
		estado  sql.NullString
	)
	err := row.Scan(&u.ID, &empresa, &u.Nombre, &ident, &tel,
		&u.Email, &u.PasswordHash, &u.RolID, &u.Rol, &estado, &acceso)
	if err != nil {
		return model.User{}, err
	}
	if empresa.Valid {
		id := uint64(empresa.Int64)
		u.EmpresaID = &id
	}
	u.Identificacion = ident.String
	u.Telefono = tel.String
	u.Estado = estado.String
	if acceso.Valid {
		t := acceso.Time
		u.UltimoAcceso = &t
	}
	return u, nil
}

// GetByEmail fetches a user joined with its role name by normalized email.
// Returns sql.ErrNoRows when the email is unknown; callers collapse that
// into the same generic credentials error as a password mismatch.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM usuarios u JOIN roles r ON u.rol_id = r.id WHERE u.email = ? LIMIT 1",
		email))
}

// GetByID fetches a user joined with its role name by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM usuarios u JOIN roles r ON u.rol_id = r.id WHERE u.id = ? LIMIT 1",
		id))
}

// EmailExists reports whether any usuarios row carries the email.  Used by
// the password-reset flow, which must answer 404 for unknown accounts.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM usuarios WHERE email = ? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email))).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdatePassword replaces the stored bcrypt hash for the given email.
// Returns ErrNotFound when the email matches no row.
func (r *UserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE usuarios SET password = ? WHERE email = ?",
		passwordHash, strings.ToLower(strings.TrimSpace(email)))
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

// UpdateLastAccess stamps ultimo_acceso with the server clock on login.
func (r *UserRepo) UpdateLastAccess(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE usuarios SET ultimo_acceso = NOW() WHERE id = ?", id)
	return err
}

// HasPermission answers whether the user's role grants the permission code
// through the roles -> rol_permisos -> permisos join.
func (r *UserRepo) HasPermission(ctx context.Context, userID uint64, code string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `
		SELECT 1 FROM usuarios u
		JOIN roles r ON u.rol_id = r.id
		JOIN rol_permisos rp ON r.id = rp.rol_id
		JOIN permisos p ON rp.permiso_id = p.id
		WHERE u.id = ? AND p.codigo = ?
		LIMIT 1`, userID, code).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

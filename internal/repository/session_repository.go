package repository

import (
	"context"
	"database/sql"

	"github.com/davidbc/pesv-backend/internal/model"
)

// SessionRepo persists login sessions.  Tokens are the signed JWT strings
// themselves; a token authenticates only while its row's expires_at lies in
// the future, so revocation is an UPDATE rather than a delete.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a session row for a fresh login.
func (r *SessionRepo) Create(ctx context.Context, s model.Session) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sesiones (usuario_id, token, ip_address, user_agent, expires_at) VALUES (?,?,?,?,?)",
		s.UsuarioID, s.Token, s.IPAddress, s.UserAgent, s.ExpiresAt)
	return err
}

// IsActive reports whether a non-expired session row exists for the exact
// token.  A structurally valid JWT without a live row does not authenticate.
func (r *SessionRepo) IsActive(ctx context.Context, token string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM sesiones WHERE token = ? AND expires_at > NOW() LIMIT 1",
		token).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Expire invalidates the session by moving its expiry to the current
// instant.  Idempotent: an absent or already-expired token is not an error.
func (r *SessionRepo) Expire(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sesiones SET expires_at = NOW() WHERE token = ?", token)
	return err
}

package model

import "time"

// Session models an entry in the `sesiones` table.  One row is inserted per
// login with a 24-hour expiry; logout invalidates the row by moving
// expires_at to the current instant.  Authentication requires both a valid
// JWT signature and a live session row for that exact token, so a signed
// token alone is never sufficient.
type Session struct {
	ID        uint64    // sesiones.id
	UsuarioID uint64    // sesiones.usuario_id
	Token     string    // sesiones.token (the JWT string)
	IPAddress string    // sesiones.ip_address
	UserAgent string    // sesiones.user_agent
	ExpiresAt time.Time // sesiones.expires_at
	CreatedAt time.Time // sesiones.created_at
}

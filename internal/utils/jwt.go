package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionTTL is how long an issued token (and its matching session row)
// stays valid.
const SessionTTL = 24 * time.Hour

// Claims is the decoded payload of an access token.  The same four values
// are embedded at issue time and attached to the request context by the
// authentication middleware.
type Claims struct {
	UserID    uint64  // usuarios.id
	Email     string  // usuarios.email
	Rol       string  // roles.nombre
	EmpresaID *uint64 // usuarios.empresa_id, nil for superadmin
}

// AccessToken represents a signed JWT along with its expiry.  The Token
// field contains the serialized JWT string; Exp is the UTC expiration that
// is also written to the sesiones row.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The JWT embeds
// the user id (sub), email, role name and company id, plus the standard
// exp/iat claims.  Expiry is SessionTTL from now.
func NewAccessToken(secret string, cl Claims) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(SessionTTL)
	claims := jwt.MapClaims{
		"sub":   cl.UserID,
		"email": cl.Email,
		"rol":   cl.Rol,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	if cl.EmpresaID != nil {
		claims["empresa_id"] = *cl.EmpresaID
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a token string and
// returns the embedded claims.  Only HMAC-signed tokens are accepted; any
// structural or signature problem yields an error.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	var cl Claims
	// Numeric JSON values decode as float64.
	if sub, ok := mc["sub"].(float64); ok {
		cl.UserID = uint64(sub)
	} else {
		return Claims{}, errors.New("missing sub claim")
	}
	if email, ok := mc["email"].(string); ok {
		cl.Email = email
	}
	if rol, ok := mc["rol"].(string); ok {
		cl.Rol = rol
	}
	if emp, ok := mc["empresa_id"].(float64); ok {
		id := uint64(emp)
		cl.EmpresaID = &id
	}
	return cl, nil
}

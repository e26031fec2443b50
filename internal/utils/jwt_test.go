package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	empresaID := uint64(7)

	tok, err := NewAccessToken(secret, Claims{
		UserID:    42,
		Email:     "conductor@empresa.co",
		Rol:       "conductor",
		EmpresaID: &empresaID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), tok.Exp, time.Minute)

	cl, err := ParseAccessToken(secret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cl.UserID)
	assert.Equal(t, "conductor@empresa.co", cl.Email)
	assert.Equal(t, "conductor", cl.Rol)
	require.NotNil(t, cl.EmpresaID)
	assert.Equal(t, uint64(7), *cl.EmpresaID)
}

func TestAccessTokenWithoutEmpresa(t *testing.T) {
	const secret = "test-secret"

	tok, err := NewAccessToken(secret, Claims{UserID: 1, Email: "root@pesv.co", Rol: "superadmin"})
	require.NoError(t, err)

	cl, err := ParseAccessToken(secret, tok.Token)
	require.NoError(t, err)
	assert.Nil(t, cl.EmpresaID)
	assert.Equal(t, "superadmin", cl.Rol)
}

func TestParseAccessTokenRejects(t *testing.T) {
	const secret = "test-secret"
	tok, err := NewAccessToken(secret, Claims{UserID: 5, Email: "a@b.co", Rol: "conductor"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{"wrong secret", "otro-secreto", tok.Token},
		{"garbage token", secret, "no.es.jwt"},
		{"empty token", secret, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAccessToken(tc.secret, tc.raw)
			assert.Error(t, err)
		})
	}
}

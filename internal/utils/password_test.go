package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secreto123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", hash)

	assert.True(t, VerifyPassword(hash, "secreto123"))
	assert.False(t, VerifyPassword(hash, "Secreto123"))
	assert.False(t, VerifyPassword(hash, ""))
	assert.False(t, VerifyPassword("no-es-un-hash", "secreto123"))
}

package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidbc/pesv-backend/internal/utils"
	"github.com/davidbc/pesv-backend/internal/verification"
)

func TestSendVerificationCode(t *testing.T) {
	users := newFakeUsers()
	users.emailExists["ana@empresa.co"] = true
	codes := verification.NewMemoryStore()
	mailer := &fakeMailer{ok: true}
	h := NewPasswordHandler(testConfig(), users, codes, mailer)

	t.Run("unknown email", func(t *testing.T) {
		rec := postJSON(t, h.SendVerificationCode, "/api/send-verification-code",
			`{"email":"nadie@empresa.co"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, mailer.codes)
	})

	t.Run("known email gets a 6-digit code", func(t *testing.T) {
		rec := postJSON(t, h.SendVerificationCode, "/api/send-verification-code",
			`{"email":"ana@empresa.co"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, mailer.codes, 1)
		assert.Len(t, mailer.codes[0], 6)
	})
}

func TestVerifyCodeAndUpdatePassword(t *testing.T) {
	users := newFakeUsers()
	users.emailExists["ana@empresa.co"] = true
	codes := verification.NewMemoryStore()
	mailer := &fakeMailer{ok: true}
	h := NewPasswordHandler(testConfig(), users, codes, mailer)

	// Issue a code through the real flow so the store holds it.
	rec := postJSON(t, h.SendVerificationCode, "/api/send-verification-code",
		`{"email":"ana@empresa.co"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	code := mailer.codes[0]

	t.Run("wrong code", func(t *testing.T) {
		rec := postJSON(t, h.VerifyCodeAndUpdatePassword, "/api/verify-code-and-update-password",
			`{"email":"ana@empresa.co","code":"000000","newPassword":"nueva123"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, users.updated)
	})

	t.Run("correct code updates the password", func(t *testing.T) {
		rec := postJSON(t, h.VerifyCodeAndUpdatePassword, "/api/verify-code-and-update-password",
			`{"email":"ana@empresa.co","code":"`+code+`","newPassword":"nueva123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		hash, ok := users.updated["ana@empresa.co"]
		require.True(t, ok)
		assert.True(t, utils.VerifyPassword(hash, "nueva123"))
	})

	t.Run("code is single use", func(t *testing.T) {
		rec := postJSON(t, h.VerifyCodeAndUpdatePassword, "/api/verify-code-and-update-password",
			`{"email":"ana@empresa.co","code":"`+code+`","newPassword":"otra456"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

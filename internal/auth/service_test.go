package auth

import (
	"context"
	"testing"
	"time"

	"libraryapi/internal/platform/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Librar1an!"

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := crypto.HashPassword(testPassword)
	require.NoError(t, err)
	return NewService(Config{
		Secret:       "test-secret",
		Username:     "librarian",
		PasswordHash: hash,
		TokenTTL:     time.Hour,
	})
}

func TestService_Login(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		token, expiresIn, err := s.Login(ctx, "librarian", testPassword)
		require.NoError(t, err)
		assert.Equal(t, 3600, expiresIn)

		claims, err := crypto.ParseToken("test-secret", token)
		require.NoError(t, err)
		assert.Equal(t, "librarian", claims.Sub)
		assert.Equal(t, crypto.RoleStaff, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := s.Login(ctx, "librarian", "nope")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, _, err := s.Login(ctx, "someone", testPassword)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := s.Login(cctx, "librarian", testPassword)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestService_LoginDisabledWithoutHash(t *testing.T) {
	s := NewService(Config{Secret: "x", Username: "librarian"})

	_, _, err := s.Login(context.Background(), "librarian", "")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewService_DefaultTTL(t *testing.T) {
	s := NewService(Config{})
	assert.Equal(t, defaultTokenTTL, s.cfg.TokenTTL)
}

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studiosadmin/admin-console/internal/auth"
	"github.com/studiosadmin/admin-console/internal/config"
	"github.com/studiosadmin/admin-console/internal/domain"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	hashed, err := auth.HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.AuthConfig{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
		AdminUsers:      map[string]string{"admin": "secret", "ops": hashed},
	}
	return NewAuthService(cfg, auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLMinutes), nil)
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	for user, pass := range map[string]string{"admin": "secret", "ops": "hunter2"} {
		result, err := svc.Login(ctx, user, pass)
		require.NoError(t, err, user)
		assert.NotEmpty(t, result.Token)

		session, err := svc.Authenticate(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, user, session.Username)
		assert.Equal(t, domain.RoleAdmin, session.Role)
	}
}

func TestLoginRejectsUnknownPairs(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	for _, pair := range [][2]string{
		{"admin", "wrong"},
		{"admin", "Secret"},
		{"admin", "secret "},
		{"nobody", "secret"},
		{"", ""},
		{"ops", "hunter3"},
	} {
		_, err := svc.Login(ctx, pair[0], pair[1])
		de := requireStatus(t, err, http.StatusUnauthorized)
		assert.Equal(t, "Invalid credentials", de.Message)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = svc.Authenticate(ctx, "not-a-jwt")
	requireStatus(t, err, http.StatusUnauthorized)

	other := auth.NewTokenManager("other-secret", 60)
	token, _, err := other.GenerateToken("admin")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, token)
	requireStatus(t, err, http.StatusUnauthorized)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdminUsers(t *testing.T) {
	users, err := ParseAdminUsers(" puneet:puneet@ssi , yash:$2a$10$abc:def ,,")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"puneet": "puneet@ssi",
		"yash":   "$2a$10$abc:def",
	}, users)

	empty, err := ParseAdminUsers("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseAdminUsers("nocolon")
	assert.Error(t, err)

	_, err = ParseAdminUsers("name:")
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("AUTH_ADMIN_USERS", "admin:secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, UsagePrimary, cfg.Store.Usage)
	assert.Equal(t, "employeeaccess", cfg.Mongo.Database)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.True(t, cfg.Auth.ProtectAdminRoutes)
	assert.Equal(t, "secret", cfg.Auth.AdminUsers["admin"])
	assert.InDelta(t, 500, cfg.Storage.TotalMB, 0.001)
	assert.InDelta(t, 80, cfg.Storage.AlertPercent, 0.001)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "mongo without uri",
			cfg:     Config{Store: StoreConfig{Driver: StoreMongo, Usage: UsagePrimary}},
			wantErr: true,
		},
		{
			name: "mongo with uri",
			cfg: Config{
				Store: StoreConfig{Driver: StoreMongo, Usage: UsagePrimary},
				Mongo: MongoConfig{URI: "mongodb://localhost:27017"},
			},
		},
		{
			name:    "postgres without dsn",
			cfg:     Config{Store: StoreConfig{Driver: StorePostgres, Usage: UsagePrimary}},
			wantErr: true,
		},
		{
			name:    "redis usage without addr",
			cfg:     Config{Store: StoreConfig{Driver: StoreMemory, Usage: UsageRedis}},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{Store: StoreConfig{Driver: "sqlite", Usage: UsagePrimary}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, AppConfig{Env: "Production"}.IsProduction())
	assert.False(t, AppConfig{Env: "development"}.IsProduction())
}

package config_test

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/inkpost/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_DRIVER", "DATABASE_PATH", "DATABASE_URL", "JWT_SECRET",
		"TOKEN_TTL", "BCRYPT_COST", "CORS_ORIGINS", "STATIC_DIR",
		"AUTH_RATE_PER_SEC", "AUTH_RATE_BURST", "LOG_LEVEL", "TRUST_PROXY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", secret)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "blog.db", cfg.DatabasePath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 1.0, cfg.AuthRate.PerSecond)
	assert.Equal(t, 10.0, cfg.AuthRate.Burst)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET environment variable is required"},
		{"short secret", map[string]string{"JWT_SECRET": "short"}, "at least 32 characters"},
		{"bcrypt out of range", map[string]string{"JWT_SECRET": secret, "BCRYPT_COST": "20"}, "BCRYPT_COST must be between 4 and 14"},
		{"bad ttl", map[string]string{"JWT_SECRET": secret, "TOKEN_TTL": "soon"}, "invalid TOKEN_TTL"},
		{"postgres without url", map[string]string{"JWT_SECRET": secret, "DATABASE_DRIVER": "postgres"}, "DATABASE_URL is required"},
		{"unknown driver", map[string]string{"JWT_SECRET": secret, "DATABASE_DRIVER": "mysql"}, "unknown DATABASE_DRIVER"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tc.want), "got %v", err)
		})
	}
}

func TestLoadDatabase_NoSecretNeeded(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_PATH", "other.db")

	cfg, err := config.LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.DatabasePath)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoad_TrustProxy(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.TrustProxy)

	t.Setenv("TRUST_PROXY", "sometimes")
	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRUST_PROXY")
}

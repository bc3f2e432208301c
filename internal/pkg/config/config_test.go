package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "dev-secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, 8, cfg.Auth.PasswordMinLength)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, 4, cfg.AuditWorkers)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "guardian_portal", cfg.Mongo.Database)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addrs)
	assert.Equal(t, uint64(50), cfg.Mongo.MaxPoolSize)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "dev-secret",
		"ACCESS_TOKEN_TTL":   "5m",
		"MAX_LOGIN_ATTEMPTS": "3",
		"ALLOWED_ORIGINS":    "https://a.example,https://b.example",
		"REDIS_DB":           "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)
}

func TestLoadFrom_ShortSecretInProduction(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":        "production",
		"JWT_SECRET": "short",
	}))
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadFrom_TTLOrdering(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":        "dev-secret",
		"ACCESS_TOKEN_TTL":  "2h",
		"REFRESH_TOKEN_TTL": "1h",
	}))
	assert.Error(t, err)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORTAL_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("PORTAL_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("PORTAL_TEST_DOTENV"))

	require.NoError(t, LoadDotenv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("PORTAL_TEST_DOTENV"))
}

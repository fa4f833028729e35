package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Point at a directory without a config.yaml so only defaults apply.
	t.Setenv("OUTLAY_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
database_url: postgres://localhost:5432/outlay
port: 9000
jwt_secret: file-secret
cors_origins:
  - https://app.example.com
  - https://admin.example.com
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("OUTLAY_CONFIG", path)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/outlay", cfg.DatabaseURL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\njwt_secret: file-secret\n"), 0o600))

	t.Setenv("OUTLAY_CONFIG", path)
	t.Setenv("DATABASE_URL", "outlay.db")
	t.Setenv("PORT", "3000")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "outlay.db", cfg.DatabaseURL)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("OUTLAY_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ORIGINS", "")

	// Test case 1: out-of-range port fails loading.
	t.Setenv("PORT", "70000")
	_, err := Load()
	assert.Error(t, err)

	// Test case 2: a non-numeric port is ignored and the default survives.
	t.Setenv("PORT", "not-a-port")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not, a, port\n"), 0o600))

	t.Setenv("OUTLAY_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

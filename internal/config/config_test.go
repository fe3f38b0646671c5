package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultDSN, cfg.DSN)
	assert.Equal(t, defaultRedisURL, cfg.RedisURL)
	assert.True(t, cfg.IsDev())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
port: 8080
dsn: "user:pass@tcp(db:3306)/linkdeck?parseTime=True"
env: production
jwt_secret: supersecret
allowed_origins:
  - linkdeck.example.com
  - "*.example.org"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "user:pass@tcp(db:3306)/linkdeck?parseTime=True", cfg.DSN)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "supersecret", cfg.JWTSecret)
	assert.Equal(t, []string{"linkdeck.example.com", "*.example.org"}, cfg.AllowedOrigins)
	// unset values still fall back
	assert.Equal(t, defaultRedisURL, cfg.RedisURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LD_PORT", "9000")
	t.Setenv("LD_ENV", "production")
	t.Setenv("LD_ALLOWED_ORIGINS", "a.example.com, b.example.com ,")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

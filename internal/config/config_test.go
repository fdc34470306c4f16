package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  driver: sqlite
  url: "file:test?mode=memory"
jwt:
  secret: "s3cret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 365*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "token", cfg.JWT.CookieName)
	assert.Equal(t, "local", cfg.Storage.Type)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://file"
jwt:
  secret: "from-file"
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
}

func TestLoad_RequiresSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://x"
`)
	t.Setenv("JWT_SECRET", "")

	_, err := Load(path)
	assert.ErrorContains(t, err, "jwt.secret")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: oracle
  url: "x"
jwt:
  secret: "s"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported database driver")
}

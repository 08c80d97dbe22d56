package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: "production"
database:
  host: "db.internal"
  dbname: "coursetalk_test"
jwt:
  secret: "file-secret"
  access_token_expiration: "24h"
logging:
  level: "debug"
  format: "text"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "coursetalk_test", cfg.Database.DBName)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenExp())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 168*time.Hour, cfg.AccessTokenExp())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")

	path := writeConfigFile(t, `
server:
  port: "9090"
database:
  host: "file-host"
jwt:
  secret: "s"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_BadExpiration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "s"
  access_token_expiration: "one week"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "coursetalk"

	assert.Equal(t,
		"postgres://app:pw@db:5433/coursetalk?sslmode=disable",
		cfg.GetPostgresConnectionString(),
	)
}

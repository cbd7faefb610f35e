package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
api:
  environment: test
  port: "9090"
  allowed_cors_domains:
    - https://example.org
  request_timeout: 5s
postgres:
  host: db
  port: "5433"
  user: cms
  password: secret
  db: cms_test
registration:
  max_retries: 5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, []string{"https://example.org"}, conf.CORSDomains())
	assert.Equal(t, 5*time.Second, conf.Timeout())
	assert.Equal(t, 15, conf.API.DefaultPerPage)
	assert.Equal(t, "db", conf.Postgres.Host)
	assert.Equal(t, "disable", conf.Postgres.SSLMode)
	assert.Equal(t, 5, conf.Registration.MaxRetries)
	assert.Equal(t, "./storage", conf.Storage.BasePath)
	assert.Empty(t, conf.Redis.Addr)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "pg.internal")
	t.Setenv("API_PORT", "7000")

	conf, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", conf.Postgres.Host)
	assert.Equal(t, "7000", conf.API.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestPostgresConfig_DSN(t *testing.T) {
	c := PostgresConfig{
		Host: "h", Port: "1", User: "u", Password: "p", DB: "d", SSLMode: "disable", TimeZone: "UTC",
	}

	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable TimeZone=UTC", c.DSN())
}

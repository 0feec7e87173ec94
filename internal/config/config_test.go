package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.True(t, cfg.ImportOnStartup)
	assert.Empty(t, cfg.ImportCSVPath)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("IMPORT_ON_STARTUP", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("DB_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.False(t, cfg.ImportOnStartup)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.DBTimeout)
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\nAPP_ADDR=:9999\n"), 0644))
	t.Chdir(tmp)
	t.Setenv("DB_DSN", "from_env")
	t.Cleanup(func() { _ = os.Unsetenv("APP_ADDR") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.DBDSN)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{DBDriver: DriverPostgres, DBDSN: "postgres://x", DBTimeout: time.Second, RateLimitRPS: 1, RateLimitBurst: 1}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"postgres without dsn", func(c *Config) { c.DBDSN = "" }, true},
		{"sqlite without path", func(c *Config) { c.DBDriver = DriverSQLite }, true},
		{"zero timeout", func(c *Config) { c.DBTimeout = 0 }, true},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }, true},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

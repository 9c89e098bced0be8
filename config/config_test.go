package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivhu/farmstand/config"
)

func TestLoad_Defaults(t *testing.T) {
	// Load with no config files should use defaults
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "data/farmstand.db", cfg.Database.DSN)
	assert.Equal(t, "products", cfg.Database.Tables.Products)
	assert.Equal(t, "gallery", cfg.Database.Tables.Gallery)
	assert.Equal(t, "./images", cfg.Storage.Path)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password)
	assert.Equal(t, "dev-secret", cfg.Session.Secret)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	// Create a temp config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 8080
  env: production
database:
  type: postgres
  dsn: postgres://localhost/farm
  tables:
    products: farm_products
    gallery: farm_gallery
storage:
  path: /var/lib/farmstand/images
admin:
  username: owner
  password: hunter2
session:
  secret: super-secret
  ttl: 3600
log:
  level: debug
`
	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgres://localhost/farm", cfg.Database.DSN)
	assert.Equal(t, "farm_products", cfg.Database.Tables.Products)
	assert.Equal(t, "farm_gallery", cfg.Database.Tables.Gallery)
	assert.Equal(t, "/var/lib/farmstand/images", cfg.Storage.Path)
	assert.Equal(t, "owner", cfg.Admin.Username)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
	assert.Equal(t, "super-secret", cfg.Session.Secret)
	assert.Equal(t, time.Hour, cfg.SessionTTL())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ProductionStoragePathFallback(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  env: production
`
	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/images", cfg.Storage.Path)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 8080
database:
  type: sqlite
  dsn: file.db
`
	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	flags.String("db-dsn", "", "")
	require.NoError(t, flags.Parse([]string{"--port=9090", "--db-dsn=flag.db"}))

	cfg, err := config.Load([]string{configPath}, flags)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "flag.db", cfg.Database.DSN)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 1234, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load(nil, flags)
	require.NoError(t, err)

	// Flag default must not shadow the config default when unset
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoad_InvalidEnvRejected(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("server:\n  env: staging\n"), 0o644)
	require.NoError(t, err)

	_, err = config.Load([]string{configPath}, nil)
	assert.Error(t, err)
}

func TestLoad_InvalidTableNameRejected(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
database:
  tables:
    products: "products; DROP TABLE users"
`
	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	// Structural validation happens at connect time
	assert.Error(t, cfg.Database.Tables.Validate())
}

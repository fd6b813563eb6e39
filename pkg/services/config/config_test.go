package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	path := writeFile(t, "reportato.yaml", `server:
  host: "0.0.0.0"
  port: 9000
  shutdown_timeout: 5s
database:
  profile: "reporting"
  profiles_path: "/etc/reportato/profiles"
export:
  encoding: "windows-1252"
  bom: true
  comma: ";"
s3:
  bucket: "reports"
  prefix: "daily"
  region: "eu-west-1"`)

	// When
	cfg, err := LoadConfig(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "reporting", cfg.Database.Profile)
	assert.Equal(t, "/etc/reportato/profiles", cfg.Database.ProfilesPath)
	assert.Equal(t, "reports", cfg.S3.Bucket)
	assert.Equal(t, "daily", cfg.S3.Prefix)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)

	opts := cfg.Export.Options()
	assert.Equal(t, "windows-1252", opts.Encoding)
	assert.True(t, opts.BOM)
	assert.Equal(t, ';', opts.Comma)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "default", cfg.Database.Profile)
	assert.Equal(t, "utf-8", cfg.Export.Encoding)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("REPORTATO_SERVER_PORT", "9999")
	t.Setenv("REPORTATO_S3_BUCKET", "reports-bucket")
	t.Setenv("REPORTATO_S3_PREFIX", "daily")
	t.Setenv("REPORTATO_S3_REGION", "eu-west-1")
	t.Setenv("REPORTATO_EXPORT_BOM", "true")
	t.Setenv("REPORTATO_EXPORT_COMMA", ";")
	t.Setenv("REPORTATO_EXPORT_CRLF", "true")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "reports-bucket", cfg.S3.Bucket)
	assert.Equal(t, "daily", cfg.S3.Prefix)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.True(t, cfg.Export.BOM)
	assert.Equal(t, ";", cfg.Export.Comma)
	assert.True(t, cfg.Export.CRLF)
	assert.Equal(t, ';', cfg.Export.Options().Comma)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRegistry_Profiles(t *testing.T) {
	path := writeFile(t, "profiles", `[default]
driver = postgres
dsn = host=localhost dbname=app
max_open_conns = 10
conn_max_lifetime = 30m

[legacy]
dsn = user:pass@tcp(db:3306)/legacy

[empty]
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)
	ctx := context.Background()

	profiles, err := registry.GetProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "legacy"}, profiles)

	settings, err := registry.GetConfig(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "postgres", settings.Driver)
	assert.Equal(t, "host=localhost dbname=app", settings.DSN)
	assert.Equal(t, 10, settings.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, settings.ConnMaxLifetime)

	settings, err = registry.GetConfig(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "mysql", settings.Driver)

	_, err = registry.GetConfig(ctx, "empty")
	assert.Error(t, err)

	_, err = registry.GetConfig(ctx, "missing")
	assert.Error(t, err)
}

func TestDatabaseConfig_Open_Errors(t *testing.T) {
	path := writeFile(t, "profiles", `[default]
driver = sqlserver
dsn = sqlserver://localhost
`)

	tests := []struct {
		name     string
		cfg      DatabaseConfig
		contains string
	}{
		{"MissingFile", DatabaseConfig{Profile: "default", ProfilesPath: filepath.Join(t.TempDir(), "nope")}, "failed to load profiles"},
		{"MissingProfile", DatabaseConfig{Profile: "other", ProfilesPath: path}, "failed to resolve database profile"},
		{"UnsupportedDriver", DatabaseConfig{Profile: "default", ProfilesPath: path}, "failed to connect to profile default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.Open(context.Background(), zerolog.Nop())
			assert.ErrorContains(t, err, tc.contains)
		})
	}
}

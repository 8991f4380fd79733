package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultAPIURL, cfg.APIURL)
	assert.Empty(t, cfg.Tenant)
}

func TestLoadFrom_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url: https://api.warden.example.com
tenant: acme
timeout_seconds: 10
logging:
  level: debug
`), 0644))

	cfg, err := loadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.warden.example.com", cfg.APIURL)
	assert.Equal(t, "acme", cfg.Tenant)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://file.example.com\n"), 0644))

	t.Setenv(envAPIURL, "https://env.example.com")
	t.Setenv(envTenant, "globex")

	cfg, err := loadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, "globex", cfg.Tenant)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [broken"), 0644))

	_, err := loadFrom(path)
	require.Error(t, err)
}

func TestDir_HonorsHomeOverride(t *testing.T) {
	t.Setenv(envHome, "/tmp/warden-home")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/warden-home", dir)
}

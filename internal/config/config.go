// Package config loads the wardenctl client configuration.
//
// Configuration lives at ~/.warden/config.yaml and can be overridden with
// WARDEN_HOME, WARDEN_API_URL and WARDEN_TENANT environment variables. A
// missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	defaultAPIURL  = "http://localhost:8000"

	envHome   = "WARDEN_HOME"
	envAPIURL = "WARDEN_API_URL"
	envTenant = "WARDEN_TENANT"
)

// LoggingConfig controls CLI diagnostics output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text, json
}

// Config holds the client configuration.
type Config struct {
	// APIURL is the base URL of the Warden admin API.
	APIURL string `yaml:"api_url,omitempty"`

	// Tenant is the tenant slug requests are scoped to. Optional; tenants
	// with a custom domain are resolved server-side from the host.
	Tenant string `yaml:"tenant,omitempty"`

	// TimeoutSeconds bounds individual API requests. Zero means the client
	// default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{APIURL: defaultAPIURL}
}

// Dir returns the wardenctl home directory, honoring WARDEN_HOME.
func Dir() (string, error) {
	if home := os.Getenv(envHome); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".warden"), nil
}

// Load reads the configuration file and applies environment overrides.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return loadFrom(filepath.Join(dir, configFileName))
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file; defaults plus env.
	case err != nil:
		return Config{}, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
		if cfg.APIURL == "" {
			cfg.APIURL = defaultAPIURL
		}
	}

	if url := os.Getenv(envAPIURL); url != "" {
		cfg.APIURL = url
	}
	if tenant := os.Getenv(envTenant); tenant != "" {
		cfg.Tenant = tenant
	}
	return cfg, nil
}

// Package config provides configuration loading and management for the
// location service.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is the prefix for environment variables that override
	// configuration values.
	EnvPrefix = "CATALOG"

	// envDatabasePassword carries the database password when no password
	// file is configured.
	envDatabasePassword = "CATALOG_DATABASE_PASSWORD"
)

// LocationTypeURL is the only location type allowed out of the box.
const LocationTypeURL = "url"

// Option defines the interface for configuration loader options.
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration.
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file.
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure.
type Config struct {
	Server   *ServerConfig   `yaml:"server,omitempty"`
	Catalog  CatalogConfig   `yaml:"catalog"`
	Database *DatabaseConfig `yaml:"database,omitempty"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Address is the listen address, e.g. ":8080".
	Address string `yaml:"address,omitempty"`
}

// CatalogConfig groups catalog-related settings.
type CatalogConfig struct {
	LocationService LocationServiceConfig `yaml:"locationService"`
}

// LocationServiceConfig configures the location registration service.
type LocationServiceConfig struct {
	// AllowedTypes is the allow-list of location types that may be
	// registered. Defaults to ["url"] when empty.
	AllowedTypes []string `yaml:"allowedTypes,omitempty"`

	// Create holds settings for the create operation.
	Create CreateConfig `yaml:"create"`
}

// CreateConfig holds settings for location creation.
type CreateConfig struct {
	// AllowUnknownType disables the type allow-list check when true.
	// Default false.
	AllowUnknownType bool `yaml:"allowUnknownType,omitempty"`
}

// DatabaseConfig defines the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslMode,omitempty"`

	// PasswordFile is the path to a file containing the password.
	// Takes priority over the CATALOG_DATABASE_PASSWORD environment
	// variable.
	PasswordFile string `yaml:"passwordFile,omitempty"`
}

// AllowedLocationTypes returns the configured allow-list, defaulting to
// ["url"].
func (c *Config) AllowedLocationTypes() []string {
	types := c.Catalog.LocationService.AllowedTypes
	if len(types) == 0 {
		return []string{LocationTypeURL}
	}
	return types
}

// AllowsLocationType reports whether a descriptor of type t may be
// registered: either t is in the allow-list, or unknown types are
// explicitly permitted.
func (c *Config) AllowsLocationType(t string) bool {
	if c.Catalog.LocationService.Create.AllowUnknownType {
		return true
	}
	return slices.Contains(c.AllowedLocationTypes(), t)
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from the CATALOG_DATABASE_PASSWORD environment variable
//
// The password from file has leading/trailing whitespace trimmed.
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		// Use filepath.Clean to prevent path traversal attacks
		cleanPath := filepath.Clean(d.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", d.PasswordFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(envDatabasePassword); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no database password configured: set passwordFile or the %s environment variable",
		envDatabasePassword,
	)
}

// GetConnectionString builds a PostgreSQL connection string with proper
// password handling. The password is URL-escaped to handle special
// characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	)

	return connString, nil
}

// validate checks required fields after loading.
func (d *DatabaseConfig) validate() error {
	if d.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if d.Port == 0 {
		return fmt.Errorf("database port is required")
	}
	if d.User == "" {
		return fmt.Errorf("database user is required")
	}
	if d.Database == "" {
		return fmt.Errorf("database name is required")
	}
	return nil
}

// Default returns a configuration with all defaults applied and no
// database section, suitable for dev mode.
func Default() *Config {
	return &Config{
		Server: &ServerConfig{Address: ":8080"},
		Catalog: CatalogConfig{
			LocationService: LocationServiceConfig{
				AllowedTypes: []string{LocationTypeURL},
			},
		},
	}
}

// LoadConfig loads and parses configuration from a YAML file.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("no configuration source specified")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server == nil {
		cfg.Server = &ServerConfig{}
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}

	if cfg.Database != nil {
		if err := cfg.Database.validate(); err != nil {
			return nil, fmt.Errorf("invalid database configuration: %w", err)
		}
	}

	return &cfg, nil
}

// Package config provides configuration management.
//
// Settings are read from an optional file (yaml, json or toml) and then
// overridden by CLEANPLAN_* environment variables, e.g.
// CLEANPLAN_STORAGE_DATABASE_URL for storage.database_url.
package config

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	"cleanplan/internal/errors"
	"cleanplan/internal/logging"
)

// EnvPrefix is the prefix of environment overrides
const EnvPrefix = "CLEANPLAN"

// Storage backends
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" mapstructure:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing" mapstructure:"pricing"`

	// Planning contains route planning configuration
	Planning PlanningConfig `json:"planning" mapstructure:"planning"`

	// Storage selects where rate tables and customers come from
	Storage StorageConfig `json:"storage" mapstructure:"storage"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// Mode is permissive or strict
	Mode string `json:"mode" mapstructure:"mode"`

	// Currency is a display label only; amounts carry no currency
	Currency string `json:"currency" mapstructure:"currency"`
}

// PlanningConfig contains route planning settings
type PlanningConfig struct {
	// AverageSpeedKmh is the assumed travel speed between visits
	AverageSpeedKmh float64 `json:"average_speed_kmh" mapstructure:"average_speed_kmh"`
}

// StorageConfig contains data source settings
type StorageConfig struct {
	// Backend is file, postgres or memory
	Backend string `json:"backend" mapstructure:"backend"`

	// PricingFile is the rate table path (.hcl or .json). The file backend
	// re-reads it per request; the memory backend loads it once at startup.
	PricingFile string `json:"pricing_file" mapstructure:"pricing_file"`

	// CustomersFile is the customer list path, read like PricingFile
	CustomersFile string `json:"customers_file" mapstructure:"customers_file"`

	// DatabaseURL is the postgres connection string
	DatabaseURL string `json:"database_url" mapstructure:"database_url"`

	// TimeoutSeconds bounds a single storage read
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" mapstructure:"addr"`

	// AllowedOrigins lists CORS origins; empty disables CORS
	AllowedOrigins []string `json:"allowed_origins" mapstructure:"allowed_origins"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Mode:     "permissive",
			Currency: "EUR",
		},
		Planning: PlanningConfig{
			AverageSpeedKmh: 30,
		},
		Storage: StorageConfig{
			Backend:        BackendFile,
			PricingFile:    "pricing.hcl",
			CustomersFile:  "customers.json",
			TimeoutSeconds: 5,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from path, or from the first cleanplan.* file
// found in the working directory or ~/.cleanplan when path is empty.
// A missing file is not an error; defaults and environment apply.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cleanplan")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.cleanplan")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.TypeConfig, "read config file", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newViper returns a viper instance seeded with defaults so that every key
// can be overridden from the environment
func newViper() *viper.Viper {
	v := viper.New()
	d := Default()

	v.SetDefault("version", d.Version)
	v.SetDefault("pricing.mode", d.Pricing.Mode)
	v.SetDefault("pricing.currency", d.Pricing.Currency)
	v.SetDefault("planning.average_speed_kmh", d.Planning.AverageSpeedKmh)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.pricing_file", d.Storage.PricingFile)
	v.SetDefault("storage.customers_file", d.Storage.CustomersFile)
	v.SetDefault("storage.database_url", d.Storage.DatabaseURL)
	v.SetDefault("storage.timeout_seconds", d.Storage.TimeoutSeconds)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Validate checks settings that would otherwise fail late
func (c *Config) Validate() error {
	switch strings.ToLower(c.Pricing.Mode) {
	case "", "permissive", "strict":
	default:
		return errors.Newf(errors.TypeConfig, "unknown pricing mode %q", c.Pricing.Mode)
	}

	switch c.Storage.Backend {
	case BackendFile, BackendMemory:
	case BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.Config("storage.database_url is required for the postgres backend")
		}
	default:
		return errors.Newf(errors.TypeConfig, "unknown storage backend %q", c.Storage.Backend)
	}

	if c.Planning.AverageSpeedKmh < 0 {
		return errors.Config("planning.average_speed_kmh must not be negative")
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

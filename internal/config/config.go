// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"plan-pricing/core/numeric"
	"plan-pricing/internal/errors"
	"plan-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains number display settings
	Pricing PricingConfig `json:"pricing"`

	// Catalog contains catalog loading settings
	Catalog CatalogConfig `json:"catalog"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// Locale is the BCP 47 tag used to group digits
	Locale string `json:"locale"`

	// Precision is the number of fraction digits shown
	Precision int `json:"precision"`
}

// CatalogConfig contains catalog-related settings
type CatalogConfig struct {
	// Strict validates every plan on load
	Strict bool `json:"strict"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// DefaultCycle is the billing cycle shown when none is given
	DefaultCycle string `json:"default_cycle"`

	// ShowHidden includes hidden plans in listings
	ShowHidden bool `json:"show_hidden"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Locale:    "en",
			Precision: numeric.DefaultPrecision,
		},
		Catalog: CatalogConfig{
			Strict: false,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			DefaultCycle:  "monthly",
			ShowHidden:    false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.plan-pricing.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".plan-pricing.json"
	}
	return filepath.Join(homeDir, ".plan-pricing.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err).WithContext("file", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("invalid config", err).WithContext("file", path)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Apply installs the process-wide number formatter described by c.
func (c *Config) Apply() {
	numeric.SetDefault(numeric.NewFormatter(c.Pricing.Locale, c.Pricing.Precision))
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

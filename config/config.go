package config

import (
	"fmt"

	"github.com/KennethUlloa/dependify/logger"
)

// Config contains the engine configuration: identity, logging, and registry
// behavior. Applications embed or load it before wiring their registries.
type Config struct {
	Name        string         `yaml:"name" mapstructure:"name"`
	Environment string         `yaml:"environment" mapstructure:"environment"`
	Debug       bool           `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config  `yaml:"logging" mapstructure:"logging"`
	Registry    RegistryConfig `yaml:"registry" mapstructure:"registry"`
}

// RegistryConfig controls registry behavior.
type RegistryConfig struct {
	// MaxDepth is a hard guard on resolution chain depth, on top of cycle
	// detection. Zero disables the guard.
	MaxDepth int `yaml:"max_depth" mapstructure:"max_depth"`
	// LogResolutions enables a debug log line per successful resolution.
	LogResolutions bool `yaml:"log_resolutions" mapstructure:"log_resolutions"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	if c.Debug && c.Logging.Level == "info" {
		c.Logging.Level = "debug"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if c.Registry.MaxDepth < 0 {
		return fmt.Errorf("config.registry.max_depth must not be negative (got: %d)", c.Registry.MaxDepth)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

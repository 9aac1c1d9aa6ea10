package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct .env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load loads configuration into cfg. It searches for config.yml and .env
// files in standard locations, binds environment variables, and unmarshals
// the result. Environment variables take precedence over file values.
func Load(cfg any, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	if lc.ConfigFile == "" {
		lc.ConfigFile = findConfigFile(lc.FileSystem)
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findEnvFile(lc.FileSystem)
	}

	v := viper.New()

	// YAML file first, as the base configuration.
	if lc.ConfigFile != "" && lc.FileSystem.Exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Printf("[config] warning: failed to load config file %s: %v\n", lc.ConfigFile, err)
		}
	}

	v.AutomaticEnv()
	autoBindEnvVars(v)

	// .env file next; re-bind to pick up the variables it introduced.
	if lc.EnvFile != "" && lc.FileSystem.Exists(lc.EnvFile) {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			fmt.Printf("[config] warning: failed to load .env file %s: %v\n", lc.EnvFile, err)
		} else {
			autoBindEnvVars(v)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// findConfigFile searches for config.yml in standard locations.
func findConfigFile(fs FileSystem) string {
	searchPaths := []string{
		"./config.yml",
		"./config/config.yml",
		"../config.yml",
		"../config/config.yml",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for .env files in standard locations.
func findEnvFile(fs FileSystem) string {
	searchPaths := []string{
		"./.env",
		"./config/.env",
		"../.env",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// autoBindEnvVars automatically binds environment variables to Viper by
// converting UPPER_CASE_WITH_UNDERSCORES to possible nested key formats.
func autoBindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants creates the possible key variants for an environment
// variable name.
//
//	REGISTRY_MAX_DEPTH -> [registry_max_depth, registry.max.depth, registry.max_depth]
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return dedupe(variants)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

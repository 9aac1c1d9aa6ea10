// Package config loads engine configuration from YAML files, .env files,
// and environment variables, in that precedence order. It provides the
// Config struct consumed at wiring time to set up logging and registry
// behavior.
package config

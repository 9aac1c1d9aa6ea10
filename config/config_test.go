package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := Config{Name: "engine"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := Config{Name: "engine", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("debug raises log level", func(t *testing.T) {
		cfg := Config{Name: "engine", Debug: true}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{"valid development", validConfig("development"), false, ""},
		{"valid staging", validConfig("staging"), false, ""},
		{"valid production", validConfig("production"), false, ""},
		{"missing name", Config{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", func() Config { c := validConfig("nope"); return c }(), true, "config.environment must be one of"},
		{"negative max depth", func() Config {
			c := validConfig("production")
			c.Registry.MaxDepth = -1
			return c
		}(), true, "max_depth must not be negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func validConfig(env string) Config {
	cfg := Config{Name: "engine", Environment: env}
	cfg.Logging.ApplyDefaults()
	return cfg
}

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: catalog
environment: staging
registry:
  max_depth: 16
  log_resolutions: true
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg Config
	if err := Load(&cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "catalog" {
		t.Errorf("expected name 'catalog', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Registry.MaxDepth != 16 {
		t.Errorf("expected max_depth 16, got %d", cfg.Registry.MaxDepth)
	}
	if !cfg.Registry.LogResolutions {
		t.Error("expected log_resolutions true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: catalog
registry:
  max_depth: 16
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("REGISTRY_MAX_DEPTH", "32")
	defer os.Unsetenv("REGISTRY_MAX_DEPTH")

	var cfg Config
	if err := Load(&cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Registry.MaxDepth != 32 {
		t.Errorf("expected env to win with 32, got %d", cfg.Registry.MaxDepth)
	}
}

func TestLoadWithEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")

	if err := os.WriteFile(envPath, []byte("NAME=from-env-file\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("NAME")

	var cfg Config
	if err := Load(&cfg, WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "from-env-file" {
		t.Errorf("expected name 'from-env-file', got %q", cfg.Name)
	}
}

type fakeFS struct {
	files map[string]bool
}

func (f *fakeFS) Exists(path string) bool { return f.files[path] }
func (f *fakeFS) LoadEnv(path string) error {
	return nil
}

func TestLoadFindsNothingGracefully(t *testing.T) {
	var cfg Config
	err := Load(&cfg, WithFileSystem(&fakeFS{files: map[string]bool{}}))
	if err != nil {
		t.Fatalf("expected no error with no files, got %v", err)
	}
}

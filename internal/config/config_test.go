package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServiceConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
name = "gx-staging"
addr = ":9090"
cors_origins = ["https://console.galacticex.dev"]
max_body_bytes = 131072
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Name != "gx-staging" {
		t.Fatalf("unexpected name: %q", cfg.Name)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if len(cfg.CorsOrigins) != 1 {
		t.Fatalf("unexpected cors origins: %+v", cfg.CorsOrigins)
	}
	if cfg.MaxBodyBytes != 131072 {
		t.Fatalf("unexpected max body bytes: %d", cfg.MaxBodyBytes)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
}

func TestLoadServiceConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`name = "gx"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %q", cfg.Addr)
	}
	if cfg.MaxBodyBytes != 1<<16 {
		t.Fatalf("unexpected default max body bytes: %d", cfg.MaxBodyBytes)
	}
}

func TestValidateServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()
	cfg.Addr = " "
	if err := ValidateServiceConfig(cfg); err == nil {
		t.Fatalf("expected error for blank addr")
	}

	cfg = DefaultServiceConfig()
	cfg.MaxBodyBytes = 0
	if err := ValidateServiceConfig(cfg); err == nil {
		t.Fatalf("expected error for zero max_body_bytes")
	}
}

func TestLoadServiceConfigMissingFile(t *testing.T) {
	if _, err := LoadServiceConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

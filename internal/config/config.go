package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type ServiceConfig struct {
	Name         string   `toml:"name"`
	Addr         string   `toml:"addr"`
	CorsOrigins  []string `toml:"cors_origins"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	LogLevel     string   `toml:"log_level"`
}

// DefaultServiceConfig returns the configuration used when no file is given.
// MaxBodyBytes leaves headroom over the wire format's 64 KiB message ceiling
// so oversized bodies are rejected before decode.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:         "galactic-exchange",
		Addr:         ":8080",
		MaxBodyBytes: 1 << 16,
		LogLevel:     "info",
	}
}

func LoadServiceConfig(path string) (ServiceConfig, error) {
	cfg := DefaultServiceConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServiceConfig{}, err
	}
	if err := ValidateServiceConfig(cfg); err != nil {
		return ServiceConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServiceConfig(cfg ServiceConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("service config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("service config missing addr")
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("service config max_body_bytes must be positive")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, PETCLINIC_CONFIG env, ./config.yaml,
//     /etc/petclinic/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. PETCLINIC_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/petclinic/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("PETCLINIC_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/petclinic/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PETCLINIC_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PETCLINIC_JWT_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("PETCLINIC_JWT_SECRET_FILE"); v != "" {
		cfg.Auth.SecretFile = v
	}
	if v := os.Getenv("PETCLINIC_TOKEN_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = ttl
		}
	}
	if v := os.Getenv("PETCLINIC_STORAGE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("PETCLINIC_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("PETCLINIC_METRICS_ENABLED"); v != "" {
		cfg.Observability.Metrics.Enabled = v == "true" || v == "1"
	}
}

// resolveFileReferences loads _file variant fields into their primary
// counterparts. The primary field wins when both are set.
func resolveFileReferences(cfg *Config) error {
	if cfg.Auth.Secret == "" && cfg.Auth.SecretFile != "" {
		data, err := os.ReadFile(cfg.Auth.SecretFile)
		if err != nil {
			return fmt.Errorf("reading auth.secret_file: %w", err)
		}
		cfg.Auth.Secret = strings.TrimSpace(string(data))
	}
	if cfg.Storage.Postgres.DSN == "" && cfg.Storage.Postgres.DSNFile != "" {
		data, err := os.ReadFile(cfg.Storage.Postgres.DSNFile)
		if err != nil {
			return fmt.Errorf("reading storage.postgres.dsn_file: %w", err)
		}
		cfg.Storage.Postgres.DSN = strings.TrimSpace(string(data))
	}
	return nil
}

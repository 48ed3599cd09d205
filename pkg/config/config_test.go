package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Auth.TokenTTL = %s, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("Storage.Type = %q, want %q", cfg.Storage.Type, "memory")
	}
	if !cfg.Observability.Metrics.Enabled {
		t.Error("Observability.Metrics.Enabled = false, want true")
	}
	if cfg.Observability.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Observability.Metrics.Path, "/metrics")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
auth:
  secret: file-secret
  token_ttl: 1h
storage:
  type: memory
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Auth.Secret != "file-secret" {
		t.Errorf("Auth.Secret = %q, want %q", cfg.Auth.Secret, "file-secret")
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("Auth.TokenTTL = %s, want 1h", cfg.Auth.TokenTTL)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %s, want 15s", cfg.Server.ReadTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
auth:
  secret: file-secret
`)
	t.Setenv("PETCLINIC_PORT", "7070")
	t.Setenv("PETCLINIC_JWT_SECRET", "env-secret")
	t.Setenv("PETCLINIC_TOKEN_TTL", "2h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Errorf("Auth.Secret = %q, want env override", cfg.Auth.Secret)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("Auth.TokenTTL = %s, want 2h", cfg.Auth.TokenTTL)
	}
}

func TestLoad_SecretFile(t *testing.T) {
	secretPath := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(secretPath, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}
	path := writeConfigFile(t, `
auth:
  secret_file: `+secretPath+`
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.Secret != "from-file" {
		t.Errorf("Auth.Secret = %q, want trimmed file contents", cfg.Auth.Secret)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for missing secret")
	}
	if !strings.Contains(err.Error(), "auth.secret") {
		t.Errorf("error = %v, want mention of auth.secret", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Defaults()
		cfg.Auth.Secret = "s"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "auth.token_ttl"},
		{"bad storage type", func(c *Config) { c.Storage.Type = "cassandra" }, "storage.type"},
		{
			"postgres without dsn",
			func(c *Config) { c.Storage.Type = "postgres" },
			"storage.postgres.dsn",
		},
		{
			"user without username",
			func(c *Config) { c.Auth.Users = []UserConfig{{Password: "p"}} },
			"username",
		},
		{
			"user without credential",
			func(c *Config) { c.Auth.Users = []UserConfig{{Username: "u"}} },
			"password",
		},
		{
			"user with both credentials",
			func(c *Config) {
				c.Auth.Users = []UserConfig{{Username: "u", Password: "p", PasswordHash: "h"}}
			},
			"password",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

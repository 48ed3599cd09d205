package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// The signing secret is the root of token trust and has no default.
	if c.Auth.Secret == "" {
		errs = append(errs, fmt.Errorf("auth.secret or auth.secret_file is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be > 0, got %s", c.Auth.TokenTTL))
	}

	for i, u := range c.Auth.Users {
		if u.Username == "" {
			errs = append(errs, fmt.Errorf("auth.users[%d].username is required", i))
		}
		if u.Password == "" && u.PasswordHash == "" {
			errs = append(errs, fmt.Errorf("auth.users[%d] needs password or password_hash", i))
		}
		if u.Password != "" && u.PasswordHash != "" {
			errs = append(errs, fmt.Errorf("auth.users[%d] must not set both password and password_hash", i))
		}
	}

	switch c.Storage.Type {
	case "memory", "postgres":
		// valid
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\" or \"postgres\", got %q", c.Storage.Type))
	}

	if c.Storage.Type == "postgres" {
		if c.Storage.Postgres.DSN == "" && c.Storage.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.dsn or storage.postgres.dsn_file is required when storage.type is \"postgres\""))
		}
	}

	return errors.Join(errs...)
}

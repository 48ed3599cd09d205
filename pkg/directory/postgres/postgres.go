// Package postgres provides a PostgreSQL implementation of directory.Store
// using pgx/v5. It backs deployments where principals are managed outside
// the process instead of the fixed in-memory directory.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petclinic-go/petclinic/pkg/directory"
)

// Config holds PostgreSQL connection and behavior settings.
type Config struct {
	// DSN is the PostgreSQL connection string.
	DSN string

	// MaxConns is the maximum number of connections in the pool (default: 25).
	MaxConns int32

	// MinConns is the minimum number of idle connections maintained (default: 5).
	MinConns int32

	// MaxConnLifetime is the maximum lifetime of a connection before it is
	// closed and replaced (default: 5 minutes).
	MaxConnLifetime time.Duration

	// MigrateOnStart runs schema migrations automatically at startup.
	MigrateOnStart bool
}

// defaults applies default values for unset configuration fields.
func (c *Config) defaults() {
	if c.MaxConns == 0 {
		c.MaxConns = 25
	}
	if c.MinConns == 0 {
		c.MinConns = 5
	}
	if c.MaxConnLifetime == 0 {
		c.MaxConnLifetime = 5 * time.Minute
	}
}

// Store is a PostgreSQL-backed principal directory.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements directory.Store at compile time.
var _ directory.Store = (*Store)(nil)

// New creates a new PostgreSQL directory with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// NewWithPool creates a directory over an existing connection pool. The
// caller keeps ownership of the pool.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Lookup returns the principal for the given username, or directory.ErrNotFound.
func (s *Store) Lookup(ctx context.Context, username string) (*directory.Principal, error) {
	p := directory.Principal{Username: username}
	err := s.pool.QueryRow(ctx, `
		SELECT password_hash, roles
		FROM principals
		WHERE username = $1
	`, username).Scan(&p.PasswordHash, &p.Roles)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, directory.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying principal: %w", err)
	}
	return &p, nil
}

// Upsert inserts or replaces a principal record. Intended for provisioning
// and tests.
func (s *Store) Upsert(ctx context.Context, p *directory.Principal) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO principals (username, password_hash, roles)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, roles = EXCLUDED.roles
	`, p.Username, p.PasswordHash, p.Roles)
	if err != nil {
		return fmt.Errorf("upserting principal: %w", err)
	}
	return nil
}

// HealthCheck verifies database connectivity.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

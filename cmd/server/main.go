// Command server runs the petclinic REST API.
//
// Configuration is layered: built-in defaults, a YAML config file
// (-config flag, PETCLINIC_CONFIG, ./config.yaml, /etc/petclinic/config.yaml),
// then PETCLINIC_* environment variable overrides. The token signing secret
// (auth.secret, auth.secret_file, or PETCLINIC_JWT_SECRET) is required.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/petclinic-go/petclinic/pkg/auth"
	"github.com/petclinic-go/petclinic/pkg/auth/password"
	"github.com/petclinic-go/petclinic/pkg/auth/token"
	"github.com/petclinic-go/petclinic/pkg/clinic"
	clinicmemory "github.com/petclinic-go/petclinic/pkg/clinic/memory"
	clinicpg "github.com/petclinic-go/petclinic/pkg/clinic/postgres"
	"github.com/petclinic-go/petclinic/pkg/config"
	"github.com/petclinic-go/petclinic/pkg/directory"
	dirmemory "github.com/petclinic-go/petclinic/pkg/directory/memory"
	dirpg "github.com/petclinic-go/petclinic/pkg/directory/postgres"
	"github.com/petclinic-go/petclinic/pkg/observability"
	"github.com/petclinic-go/petclinic/pkg/transport"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	verifier := password.Bcrypt{Cost: cfg.Auth.BcryptCost}

	codec, err := token.New([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	// Build the principal directory and clinic store.
	var (
		principals directory.Store
		store      clinic.Store
	)
	switch cfg.Storage.Type {
	case "postgres":
		ctx := context.Background()
		pgStore, err := clinicpg.New(ctx, clinicpg.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return fmt.Errorf("creating postgres store: %w", err)
		}
		store = pgStore

		// The principal directory shares the clinic store's pool.
		pgDir := dirpg.NewWithPool(pgStore.Pool())
		if cfg.Storage.Postgres.MigrateOnStart {
			if err := pgDir.Migrate(ctx); err != nil {
				return fmt.Errorf("migrating principal directory: %w", err)
			}
		}
		principals = pgDir
		slog.Info("storage enabled", "type", "postgres")
	default:
		store = clinicmemory.NewSeeded()
		seeded, err := seedPrincipals(cfg, verifier)
		if err != nil {
			return err
		}
		principals = dirmemory.New(seeded)
		slog.Info("storage enabled", "type", "memory")
	}
	defer store.Close()

	authn := auth.NewAuthenticator(principals, verifier)
	adapter := transport.NewAdapter(authn, codec, principals, store, transport.DefaultConfig())

	mux := http.NewServeMux()
	mux.Handle("/", adapter.Handler())

	rules := auth.DefaultRules
	if cfg.Observability.Metrics.Enabled {
		mux.Handle("GET "+cfg.Observability.Metrics.Path, promhttp.Handler())
		// Keep the exposition endpoint public wherever config puts it.
		rules = rules.WithPublic(cfg.Observability.Metrics.Path)
	}

	// Compose the pipeline: observability and request plumbing on the
	// outside, then the authorization filter and the access decision, then
	// the handlers. The filter only populates identity; Require decides.
	handler := transport.Chain(
		transport.RequestID(),
		transport.Logging(slog.Default()),
		transport.Recovery(),
		observability.MetricsMiddleware,
		auth.Filter(codec, principals),
		auth.Require(rules),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port, "storage", cfg.Storage.Type)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// seedPrincipals builds the in-memory directory entries from config, or the
// built-in demonstration users when none are configured.
func seedPrincipals(cfg *config.Config, verifier password.Bcrypt) ([]directory.Principal, error) {
	users := cfg.Auth.Users
	if len(users) == 0 {
		users = []config.UserConfig{
			{Username: "admin", Password: "password", Roles: []string{"user"}},
			{Username: "user", Password: "password", Roles: []string{"user"}},
		}
	}

	principals := make([]directory.Principal, 0, len(users))
	for _, u := range users {
		hash := u.PasswordHash
		if hash == "" {
			h, err := verifier.Hash(u.Password)
			if err != nil {
				return nil, fmt.Errorf("hashing credential for %q: %w", u.Username, err)
			}
			hash = h
		}
		principals = append(principals, directory.Principal{
			Username:     u.Username,
			Roles:        u.Roles,
			PasswordHash: hash,
		})
	}
	return principals, nil
}

package transport

import (
	"net/http"

	"github.com/petclinic-go/petclinic/pkg/auth"
	"github.com/petclinic-go/petclinic/pkg/auth/token"
	"github.com/petclinic-go/petclinic/pkg/clinic"
	"github.com/petclinic-go/petclinic/pkg/directory"
)

// Adapter serves the petclinic REST API over HTTP.
type Adapter struct {
	authn      *auth.Authenticator
	codec      *token.Codec
	principals directory.Store
	store      clinic.Store
	mux        *http.ServeMux
	config     Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MB
	}
}

// NewAdapter creates an HTTP adapter over the auth components and the
// clinic store.
func NewAdapter(authn *auth.Authenticator, codec *token.Codec, principals directory.Store, store clinic.Store, cfg Config) *Adapter {
	a := &Adapter{
		authn:      authn,
		codec:      codec,
		principals: principals,
		store:      store,
		mux:        http.NewServeMux(),
		config:     cfg,
	}

	a.mux.HandleFunc("POST /api/auth/login", a.handleLogin)
	a.mux.HandleFunc("POST /api/auth/validate", a.handleValidate)

	a.mux.HandleFunc("GET /api/owners", a.handleListOwners)
	a.mux.HandleFunc("GET /api/owners/{ownerId}", a.handleGetOwner)
	a.mux.HandleFunc("POST /api/owners", a.handleCreateOwner)
	a.mux.HandleFunc("PUT /api/owners/{ownerId}", a.handleUpdateOwner)

	a.mux.HandleFunc("GET /api/pets/types", a.handleListPetTypes)
	a.mux.HandleFunc("GET /api/pets/{petId}", a.handleGetPet)
	a.mux.HandleFunc("POST /api/pets", a.handleCreatePet)
	a.mux.HandleFunc("PUT /api/pets/{petId}", a.handleUpdatePet)

	a.mux.HandleFunc("GET /api/vets", a.handleListVets)
	a.mux.HandleFunc("GET /api/vets/{vetId}", a.handleGetVet)

	a.mux.HandleFunc("GET /healthz", a.handleHealth)

	return a
}

// Handler returns the http.Handler for this adapter with the request body
// size limit applied. Authorization middleware is composed by the caller.
func (a *Adapter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.config.MaxBodySize > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
		}
		a.mux.ServeHTTP(w, r)
	})
}

// handleHealth reports liveness and store reachability.
func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.store.HealthCheck(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

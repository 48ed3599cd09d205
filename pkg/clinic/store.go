package clinic

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract for the clinic domain. Implementations
// must be safe for concurrent use; write methods return the stored entity
// with its assigned identifiers.
type Store interface {
	ListOwners(ctx context.Context) ([]Owner, error)
	GetOwner(ctx context.Context, id int) (*Owner, error)
	CreateOwner(ctx context.Context, o *Owner) (*Owner, error)
	// UpdateOwner replaces the owner's contact fields, keeping its pets.
	// Returns ErrNotFound when the owner does not exist.
	UpdateOwner(ctx context.Context, id int, o *Owner) (*Owner, error)

	ListPetTypes(ctx context.Context) ([]PetType, error)
	GetPet(ctx context.Context, id int) (*Pet, error)
	// CreatePet adds a pet to the given owner. Returns ErrNotFound when the
	// owner does not exist.
	CreatePet(ctx context.Context, ownerID int, p *Pet) (*Pet, error)
	// UpdatePet replaces the pet's name, birth date, and type.
	UpdatePet(ctx context.Context, id int, p *Pet) (*Pet, error)

	ListVets(ctx context.Context) ([]Vet, error)
	GetVet(ctx context.Context, id int) (*Vet, error)

	// HealthCheck verifies the store is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

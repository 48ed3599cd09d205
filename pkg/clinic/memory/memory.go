// Package memory provides an in-memory clinic.Store for demonstration
// deployments and tests. Data lives in process memory and is lost on
// restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/petclinic-go/petclinic/pkg/clinic"
)

// Store is an in-memory clinic.Store guarded by a single RWMutex.
type Store struct {
	mu       sync.RWMutex
	owners   map[int]*clinic.Owner
	vets     map[int]*clinic.Vet
	petTypes []clinic.PetType

	nextOwnerID int
	nextPetID   int
}

// Ensure Store implements clinic.Store at compile time.
var _ clinic.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		owners:      make(map[int]*clinic.Owner),
		vets:        make(map[int]*clinic.Vet),
		nextOwnerID: 1,
		nextPetID:   1,
	}
}

// ListOwners returns all owners ordered by id.
func (s *Store) ListOwners(_ context.Context) ([]clinic.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]clinic.Owner, 0, len(s.owners))
	for _, o := range s.owners {
		out = append(out, *cloneOwner(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetOwner returns the owner with the given id, or clinic.ErrNotFound.
func (s *Store) GetOwner(_ context.Context, id int) (*clinic.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.owners[id]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	return cloneOwner(o), nil
}

// CreateOwner stores a new owner and assigns its id. Pets supplied on the
// incoming owner are assigned ids as well.
func (s *Store) CreateOwner(_ context.Context, o *clinic.Owner) (*clinic.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneOwner(o)
	stored.ID = s.nextOwnerID
	s.nextOwnerID++
	for i := range stored.Pets {
		stored.Pets[i].ID = s.nextPetID
		s.nextPetID++
	}
	s.owners[stored.ID] = stored
	return cloneOwner(stored), nil
}

// UpdateOwner replaces the owner's contact fields, keeping its pets.
func (s *Store) UpdateOwner(_ context.Context, id int, o *clinic.Owner) (*clinic.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.owners[id]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	existing.FirstName = o.FirstName
	existing.LastName = o.LastName
	existing.Address = o.Address
	existing.City = o.City
	existing.Telephone = o.Telephone
	return cloneOwner(existing), nil
}

// ListPetTypes returns the known pet types.
func (s *Store) ListPetTypes(_ context.Context) ([]clinic.PetType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]clinic.PetType, len(s.petTypes))
	copy(out, s.petTypes)
	return out, nil
}

// GetPet finds a pet by id across all owners.
func (s *Store) GetPet(_ context.Context, id int) (*clinic.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.owners {
		if p := o.Pet(id); p != nil {
			clone := *p
			return &clone, nil
		}
	}
	return nil, clinic.ErrNotFound
}

// CreatePet adds a pet to the given owner.
func (s *Store) CreatePet(_ context.Context, ownerID int, p *clinic.Pet) (*clinic.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.owners[ownerID]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	stored := *p
	stored.ID = s.nextPetID
	s.nextPetID++
	o.Pets = append(o.Pets, stored)
	return &stored, nil
}

// UpdatePet replaces the pet's name, birth date, and type.
func (s *Store) UpdatePet(_ context.Context, id int, p *clinic.Pet) (*clinic.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.owners {
		if existing := o.Pet(id); existing != nil {
			existing.Name = p.Name
			existing.BirthDate = p.BirthDate
			existing.Type = p.Type
			clone := *existing
			return &clone, nil
		}
	}
	return nil, clinic.ErrNotFound
}

// ListVets returns all vets ordered by id.
func (s *Store) ListVets(_ context.Context) ([]clinic.Vet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]clinic.Vet, 0, len(s.vets))
	for _, v := range s.vets {
		out = append(out, *cloneVet(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetVet returns the vet with the given id, or clinic.ErrNotFound.
func (s *Store) GetVet(_ context.Context, id int) (*clinic.Vet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vets[id]
	if !ok {
		return nil, clinic.ErrNotFound
	}
	return cloneVet(v), nil
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// cloneOwner deep-copies an owner so callers never share slices with the
// store's internal state.
func cloneOwner(o *clinic.Owner) *clinic.Owner {
	clone := *o
	clone.Pets = make([]clinic.Pet, len(o.Pets))
	copy(clone.Pets, o.Pets)
	return &clone
}

func cloneVet(v *clinic.Vet) *clinic.Vet {
	clone := *v
	clone.Specialties = make([]clinic.Specialty, len(v.Specialties))
	copy(clone.Specialties, v.Specialties)
	return &clone
}

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/petclinic-go/petclinic/pkg/clinic"
)

func TestSeededData(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	owners, err := s.ListOwners(ctx)
	if err != nil {
		t.Fatalf("ListOwners: %v", err)
	}
	if len(owners) != 5 {
		t.Fatalf("len(owners) = %d, want 5", len(owners))
	}
	if owners[0].LastName != "Franklin" {
		t.Errorf("owners[0].LastName = %q, want %q", owners[0].LastName, "Franklin")
	}
	if len(owners[2].Pets) != 2 {
		t.Errorf("Rodriquez has %d pets, want 2", len(owners[2].Pets))
	}

	types, err := s.ListPetTypes(ctx)
	if err != nil {
		t.Fatalf("ListPetTypes: %v", err)
	}
	if len(types) != 6 {
		t.Errorf("len(types) = %d, want 6", len(types))
	}

	vets, err := s.ListVets(ctx)
	if err != nil {
		t.Fatalf("ListVets: %v", err)
	}
	if len(vets) != 6 {
		t.Fatalf("len(vets) = %d, want 6", len(vets))
	}
	if len(vets[2].Specialties) != 2 {
		t.Errorf("Douglas has %d specialties, want 2", len(vets[2].Specialties))
	}
}

func TestOwnerCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateOwner(ctx, &clinic.Owner{
		FirstName: "Ada", LastName: "Lovelace",
		Address: "12 Analytical Way", City: "London", Telephone: "0000000001",
		Pets: []clinic.Pet{
			{Name: "Byron", BirthDate: clinic.NewDate(2020, time.January, 2)},
		},
	})
	if err != nil {
		t.Fatalf("CreateOwner: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created owner has no id")
	}
	if len(created.Pets) != 1 || created.Pets[0].ID == 0 {
		t.Fatalf("pet not assigned an id: %+v", created.Pets)
	}

	got, err := s.GetOwner(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetOwner: %v", err)
	}
	if got.LastName != "Lovelace" {
		t.Errorf("LastName = %q, want %q", got.LastName, "Lovelace")
	}

	updated, err := s.UpdateOwner(ctx, created.ID, &clinic.Owner{
		FirstName: "Ada", LastName: "King",
		Address: "12 Analytical Way", City: "London", Telephone: "0000000002",
	})
	if err != nil {
		t.Fatalf("UpdateOwner: %v", err)
	}
	if updated.LastName != "King" {
		t.Errorf("LastName = %q, want %q", updated.LastName, "King")
	}
	if len(updated.Pets) != 1 {
		t.Errorf("update dropped pets: %+v", updated.Pets)
	}

	if _, err := s.GetOwner(ctx, 999); !errors.Is(err, clinic.ErrNotFound) {
		t.Errorf("GetOwner(999) error = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateOwner(ctx, 999, &clinic.Owner{}); !errors.Is(err, clinic.ErrNotFound) {
		t.Errorf("UpdateOwner(999) error = %v, want ErrNotFound", err)
	}
}

func TestPetCRUD(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	created, err := s.CreatePet(ctx, 1, &clinic.Pet{
		Name:      "Rex",
		BirthDate: clinic.NewDate(2021, time.June, 15),
		Type:      clinic.PetType{ID: 2, Name: "dog"},
	})
	if err != nil {
		t.Fatalf("CreatePet: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created pet has no id")
	}

	got, err := s.GetPet(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPet: %v", err)
	}
	if got.Name != "Rex" {
		t.Errorf("Name = %q, want %q", got.Name, "Rex")
	}

	updated, err := s.UpdatePet(ctx, created.ID, &clinic.Pet{
		Name:      "Rexy",
		BirthDate: got.BirthDate,
		Type:      got.Type,
	})
	if err != nil {
		t.Fatalf("UpdatePet: %v", err)
	}
	if updated.Name != "Rexy" {
		t.Errorf("Name = %q, want %q", updated.Name, "Rexy")
	}

	if _, err := s.CreatePet(ctx, 999, &clinic.Pet{Name: "Ghost"}); !errors.Is(err, clinic.ErrNotFound) {
		t.Errorf("CreatePet for missing owner error = %v, want ErrNotFound", err)
	}
	if _, err := s.GetPet(ctx, 999); !errors.Is(err, clinic.ErrNotFound) {
		t.Errorf("GetPet(999) error = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdatePet(ctx, 999, &clinic.Pet{}); !errors.Is(err, clinic.ErrNotFound) {
		t.Errorf("UpdatePet(999) error = %v, want ErrNotFound", err)
	}
}

func TestListOwners_ReturnsCopies(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	owners, err := s.ListOwners(ctx)
	if err != nil {
		t.Fatalf("ListOwners: %v", err)
	}
	owners[0].Pets[0].Name = "mutated"

	again, err := s.GetOwner(ctx, owners[0].ID)
	if err != nil {
		t.Fatalf("GetOwner: %v", err)
	}
	if again.Pets[0].Name == "mutated" {
		t.Error("store state shared with caller slice")
	}
}

func TestGetVet(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	v, err := s.GetVet(ctx, 2)
	if err != nil {
		t.Fatalf("GetVet: %v", err)
	}
	if v.LastName != "Leary" {
		t.Errorf("LastName = %q, want %q", v.LastName, "Leary")
	}
	if len(v.Specialties) != 1 || v.Specialties[0].Name != "radiology" {
		t.Errorf("Specialties = %+v, want radiology", v.Specialties)
	}

	if _, err := s.GetVet(ctx, 999); !errors.Is(err, clinic.ErrNotFound) {
		t.Errorf("GetVet(999) error = %v, want ErrNotFound", err)
	}
}

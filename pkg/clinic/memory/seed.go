package memory

import (
	"context"
	"time"

	"github.com/petclinic-go/petclinic/pkg/clinic"
)

// NewSeeded creates an in-memory store populated with the demonstration
// data set: the standard pet types, a handful of owners with pets, and
// vets with specialties.
func NewSeeded() *Store {
	s := New()
	s.petTypes = []clinic.PetType{
		{ID: 1, Name: "cat"},
		{ID: 2, Name: "dog"},
		{ID: 3, Name: "lizard"},
		{ID: 4, Name: "snake"},
		{ID: 5, Name: "bird"},
		{ID: 6, Name: "hamster"},
	}

	ctx := context.Background()
	owners := []clinic.Owner{
		{
			FirstName: "George", LastName: "Franklin",
			Address: "110 W. Liberty St.", City: "Madison", Telephone: "6085551023",
			Pets: []clinic.Pet{
				{Name: "Leo", BirthDate: clinic.NewDate(2010, time.September, 7), Type: s.petTypes[0]},
			},
		},
		{
			FirstName: "Betty", LastName: "Davis",
			Address: "638 Cardinal Ave.", City: "Sun Prairie", Telephone: "6085551749",
			Pets: []clinic.Pet{
				{Name: "Basil", BirthDate: clinic.NewDate(2012, time.August, 6), Type: s.petTypes[5]},
			},
		},
		{
			FirstName: "Eduardo", LastName: "Rodriquez",
			Address: "2693 Commerce St.", City: "McFarland", Telephone: "6085558763",
			Pets: []clinic.Pet{
				{Name: "Rosy", BirthDate: clinic.NewDate(2011, time.April, 17), Type: s.petTypes[1]},
				{Name: "Jewel", BirthDate: clinic.NewDate(2010, time.March, 7), Type: s.petTypes[1]},
			},
		},
		{
			FirstName: "Harold", LastName: "Davis",
			Address: "563 Friendly St.", City: "Windsor", Telephone: "6085553198",
			Pets: []clinic.Pet{
				{Name: "Iggy", BirthDate: clinic.NewDate(2010, time.November, 30), Type: s.petTypes[2]},
			},
		},
		{
			FirstName: "Jean", LastName: "Coleman",
			Address: "105 N. Lake St.", City: "Monona", Telephone: "6085552654",
			Pets: []clinic.Pet{
				{Name: "Max", BirthDate: clinic.NewDate(2012, time.September, 4), Type: s.petTypes[0]},
				{Name: "Samantha", BirthDate: clinic.NewDate(2012, time.September, 4), Type: s.petTypes[0]},
			},
		},
	}
	for i := range owners {
		s.CreateOwner(ctx, &owners[i])
	}

	radiology := clinic.Specialty{ID: 1, Name: "radiology"}
	surgery := clinic.Specialty{ID: 2, Name: "surgery"}
	dentistry := clinic.Specialty{ID: 3, Name: "dentistry"}
	vets := []*clinic.Vet{
		{ID: 1, FirstName: "James", LastName: "Carter"},
		{ID: 2, FirstName: "Helen", LastName: "Leary", Specialties: []clinic.Specialty{radiology}},
		{ID: 3, FirstName: "Linda", LastName: "Douglas", Specialties: []clinic.Specialty{surgery, dentistry}},
		{ID: 4, FirstName: "Rafael", LastName: "Ortega", Specialties: []clinic.Specialty{surgery}},
		{ID: 5, FirstName: "Henry", LastName: "Stevens", Specialties: []clinic.Specialty{radiology}},
		{ID: 6, FirstName: "Sharon", LastName: "Jenkins"},
	}
	for _, v := range vets {
		s.vets[v.ID] = v
	}

	return s
}

// Package clinic defines the veterinary-clinic domain model and the Store
// contract its HTTP handlers depend on. Implementations live in the memory
// and postgres subpackages.
package clinic

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire format for dates.
const dateLayout = "2006-01-02"

// Date is a calendar date serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate creates a Date for the given day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON renders the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON parses a quoted "YYYY-MM-DD" string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// PetType is a kind of pet (cat, dog, ...).
type PetType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Pet belongs to exactly one owner.
type Pet struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	BirthDate Date    `json:"birthDate"`
	Type      PetType `json:"type"`
}

// Owner is a pet owner with contact details and their pets.
type Owner struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Telephone string `json:"telephone"`
	Pets      []Pet  `json:"pets"`
}

// Pet returns the owner's pet with the given id, or nil.
func (o *Owner) Pet(id int) *Pet {
	for i := range o.Pets {
		if o.Pets[i].ID == id {
			return &o.Pets[i]
		}
	}
	return nil
}

// Specialty is a veterinary specialty.
type Specialty struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Vet is a veterinarian with their specialties.
type Vet struct {
	ID          int         `json:"id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Specialties []Specialty `json:"specialties"`
}

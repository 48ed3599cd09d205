// Package postgres provides a PostgreSQL implementation of clinic.Store
// using pgx/v5 for connection pooling.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petclinic-go/petclinic/pkg/clinic"
)

// Config holds PostgreSQL connection and behavior settings.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MigrateOnStart  bool
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

// Store is a PostgreSQL-backed clinic.Store.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements clinic.Store at compile time.
var _ clinic.Store = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
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

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// Pool exposes the underlying connection pool so a single pool can be
// shared with the principal directory.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// ListOwners returns all owners with their pets, ordered by id.
func (s *Store) ListOwners(ctx context.Context) ([]clinic.Owner, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying owners: %w", err)
	}
	defer rows.Close()

	var owners []clinic.Owner
	index := make(map[int]int)
	for rows.Next() {
		var o clinic.Owner
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone); err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		o.Pets = []clinic.Pet{}
		index[o.ID] = len(owners)
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owners: %w", err)
	}

	petRows, err := s.pool.Query(ctx, `
		SELECT p.owner_id, p.id, p.name, p.birth_date, t.id, t.name
		FROM pets p
		JOIN pet_types t ON t.id = p.type_id
		ORDER BY p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying pets: %w", err)
	}
	defer petRows.Close()

	for petRows.Next() {
		var ownerID int
		var p clinic.Pet
		var birth time.Time
		if err := petRows.Scan(&ownerID, &p.ID, &p.Name, &birth, &p.Type.ID, &p.Type.Name); err != nil {
			return nil, fmt.Errorf("scanning pet: %w", err)
		}
		p.BirthDate = clinic.Date{Time: birth}
		if i, ok := index[ownerID]; ok {
			owners[i].Pets = append(owners[i].Pets, p)
		}
	}
	if err := petRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pets: %w", err)
	}

	return owners, nil
}

// GetOwner returns the owner with the given id and their pets.
func (s *Store) GetOwner(ctx context.Context, id int) (*clinic.Owner, error) {
	var o clinic.Owner
	err := s.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		WHERE id = $1
	`, id).Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, clinic.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying owner: %w", err)
	}

	pets, err := s.petsForOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Pets = pets
	return &o, nil
}

// petsForOwner loads the pets of a single owner ordered by id.
func (s *Store) petsForOwner(ctx context.Context, ownerID int) ([]clinic.Pet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.name, p.birth_date, t.id, t.name
		FROM pets p
		JOIN pet_types t ON t.id = p.type_id
		WHERE p.owner_id = $1
		ORDER BY p.id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying pets: %w", err)
	}
	defer rows.Close()

	pets := []clinic.Pet{}
	for rows.Next() {
		var p clinic.Pet
		var birth time.Time
		if err := rows.Scan(&p.ID, &p.Name, &birth, &p.Type.ID, &p.Type.Name); err != nil {
			return nil, fmt.Errorf("scanning pet: %w", err)
		}
		p.BirthDate = clinic.Date{Time: birth}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

// CreateOwner stores a new owner and its pets, assigning ids.
func (s *Store) CreateOwner(ctx context.Context, o *clinic.Owner) (*clinic.Owner, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO owners (first_name, last_name, address, city, telephone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, o.FirstName, o.LastName, o.Address, o.City, o.Telephone).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("inserting owner: %w", err)
	}

	for i := range o.Pets {
		p := &o.Pets[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO pets (name, birth_date, type_id, owner_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, p.Name, p.BirthDate.Time, p.Type.ID, id).Scan(&p.ID)
		if err != nil {
			return nil, fmt.Errorf("inserting pet: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing owner: %w", err)
	}

	return s.GetOwner(ctx, id)
}

// UpdateOwner replaces the owner's contact fields, keeping its pets.
func (s *Store) UpdateOwner(ctx context.Context, id int, o *clinic.Owner) (*clinic.Owner, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE owners
		SET first_name = $2, last_name = $3, address = $4, city = $5, telephone = $6
		WHERE id = $1
	`, id, o.FirstName, o.LastName, o.Address, o.City, o.Telephone)
	if err != nil {
		return nil, fmt.Errorf("updating owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, clinic.ErrNotFound
	}
	return s.GetOwner(ctx, id)
}

// ListPetTypes returns the known pet types ordered by id.
func (s *Store) ListPetTypes(ctx context.Context) ([]clinic.PetType, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM pet_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying pet types: %w", err)
	}
	defer rows.Close()

	var types []clinic.PetType
	for rows.Next() {
		var t clinic.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning pet type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// GetPet returns the pet with the given id.
func (s *Store) GetPet(ctx context.Context, id int) (*clinic.Pet, error) {
	var p clinic.Pet
	var birth time.Time
	err := s.pool.QueryRow(ctx, `
		SELECT p.id, p.name, p.birth_date, t.id, t.name
		FROM pets p
		JOIN pet_types t ON t.id = p.type_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.Name, &birth, &p.Type.ID, &p.Type.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, clinic.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying pet: %w", err)
	}
	p.BirthDate = clinic.Date{Time: birth}
	return &p, nil
}

// CreatePet adds a pet to the given owner. A missing owner surfaces as
// clinic.ErrNotFound via the foreign key violation.
func (s *Store) CreatePet(ctx context.Context, ownerID int, p *clinic.Pet) (*clinic.Pet, error) {
	var id int
	err := s.pool.QueryRow(ctx, `
		INSERT INTO pets (name, birth_date, type_id, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.Name, p.BirthDate.Time, p.Type.ID, ownerID).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, clinic.ErrNotFound
		}
		return nil, fmt.Errorf("inserting pet: %w", err)
	}
	return s.GetPet(ctx, id)
}

// UpdatePet replaces the pet's name, birth date, and type.
func (s *Store) UpdatePet(ctx context.Context, id int, p *clinic.Pet) (*clinic.Pet, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE pets
		SET name = $2, birth_date = $3, type_id = $4
		WHERE id = $1
	`, id, p.Name, p.BirthDate.Time, p.Type.ID)
	if err != nil {
		return nil, fmt.Errorf("updating pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, clinic.ErrNotFound
	}
	return s.GetPet(ctx, id)
}

// ListVets returns all vets with their specialties, ordered by id.
func (s *Store) ListVets(ctx context.Context) ([]clinic.Vet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT v.id, v.first_name, v.last_name, sp.id, sp.name
		FROM vets v
		LEFT JOIN vet_specialties vs ON vs.vet_id = v.id
		LEFT JOIN specialties sp ON sp.id = vs.specialty_id
		ORDER BY v.id, sp.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying vets: %w", err)
	}
	defer rows.Close()

	var vets []clinic.Vet
	index := make(map[int]int)
	for rows.Next() {
		var (
			v        clinic.Vet
			specID   *int
			specName *string
		)
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &specID, &specName); err != nil {
			return nil, fmt.Errorf("scanning vet: %w", err)
		}
		i, ok := index[v.ID]
		if !ok {
			i = len(vets)
			index[v.ID] = i
			vets = append(vets, v)
		}
		if specID != nil && specName != nil {
			vets[i].Specialties = append(vets[i].Specialties, clinic.Specialty{ID: *specID, Name: *specName})
		}
	}
	return vets, rows.Err()
}

// GetVet returns the vet with the given id.
func (s *Store) GetVet(ctx context.Context, id int) (*clinic.Vet, error) {
	vets, err := s.ListVets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range vets {
		if vets[i].ID == id {
			return &vets[i], nil
		}
	}
	return nil, clinic.ErrNotFound
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

// isForeignKeyViolation reports whether the error is a PostgreSQL foreign
// key violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

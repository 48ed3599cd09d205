// Package memory provides a fixed in-memory directory.Store for
// demonstration deployments and tests. The record set is built once at
// construction and never mutated, so lookups need no synchronization.
package memory

import (
	"context"

	"github.com/petclinic-go/petclinic/pkg/directory"
)

// Store is an immutable in-memory principal directory.
type Store struct {
	principals map[string]*directory.Principal
}

// Ensure Store implements directory.Store at compile time.
var _ directory.Store = (*Store)(nil)

// New creates a directory from the given principals, keyed by username.
// Later entries with a duplicate username replace earlier ones.
func New(principals []directory.Principal) *Store {
	m := make(map[string]*directory.Principal, len(principals))
	for i := range principals {
		p := principals[i]
		m[p.Username] = &p
	}
	return &Store{principals: m}
}

// Lookup returns the principal for the given username, or directory.ErrNotFound.
func (s *Store) Lookup(_ context.Context, username string) (*directory.Principal, error) {
	p, ok := s.principals[username]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return p, nil
}

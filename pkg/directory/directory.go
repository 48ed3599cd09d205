// Package directory defines the principal directory contract: resolving a
// username to its stored principal record. Implementations must be safe for
// unsynchronized concurrent reads; the record set is fixed for the lifetime
// of the process in the memory implementation and externally managed in the
// postgres implementation.
package directory

import (
	"context"
	"errors"
)

// Principal is the stored identity record for a user.
type Principal struct {
	// Username is the unique identifier.
	Username string

	// Roles lists the role names granted to this principal.
	Roles []string

	// PasswordHash is the bcrypt hash of the principal's password.
	// It is never serialized or logged.
	PasswordHash string
}

// ErrNotFound is returned by Lookup when no principal exists for a username.
var ErrNotFound = errors.New("principal not found")

// Store resolves usernames to principal records.
type Store interface {
	// Lookup returns the principal for the given username, or ErrNotFound.
	// Lookup has no side effects.
	Lookup(ctx context.Context, username string) (*Principal, error)
}

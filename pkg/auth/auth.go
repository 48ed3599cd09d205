package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/petclinic-go/petclinic/pkg/auth/password"
	"github.com/petclinic-go/petclinic/pkg/directory"
)

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password. The single message avoids leaking which half of the pair failed.
var ErrInvalidCredentials = errors.New("Invalid username or password")

// Authenticator turns a (username, password) pair into an authenticated
// principal. It holds no mutable state and is safe for concurrent use.
type Authenticator struct {
	store    directory.Store
	verifier password.Verifier
}

// NewAuthenticator creates an Authenticator over the given principal
// directory and password verifier.
func NewAuthenticator(store directory.Store, verifier password.Verifier) *Authenticator {
	return &Authenticator{store: store, verifier: verifier}
}

// Authenticate resolves the username and verifies the password. Both failure
// causes collapse to ErrInvalidCredentials; any other error is an internal
// directory failure.
func (a *Authenticator) Authenticate(ctx context.Context, username, pass string) (*directory.Principal, error) {
	p, err := a.store.Lookup(ctx, username)
	if errors.Is(err, directory.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up principal: %w", err)
	}

	if !a.verifier.Verify(pass, p.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

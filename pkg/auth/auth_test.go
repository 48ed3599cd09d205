package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/petclinic-go/petclinic/pkg/auth/password"
	"github.com/petclinic-go/petclinic/pkg/directory"
	dirmemory "github.com/petclinic-go/petclinic/pkg/directory/memory"
)

func testStore() directory.Store {
	return dirmemory.New([]directory.Principal{
		{
			Username:     "admin",
			Roles:        []string{"admin", "user"},
			PasswordHash: password.MustHash("password"),
		},
	})
}

func TestAuthenticate(t *testing.T) {
	a := NewAuthenticator(testStore(), password.Bcrypt{})

	p, err := a.Authenticate(context.Background(), "admin", "password")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if p.Username != "admin" {
		t.Errorf("username = %q, want %q", p.Username, "admin")
	}
	if len(p.Roles) != 2 {
		t.Errorf("roles = %v, want 2 entries", p.Roles)
	}
}

func TestAuthenticate_Failures(t *testing.T) {
	a := NewAuthenticator(testStore(), password.Bcrypt{})

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "password"},
		{"wrong password", "admin", "letmein"},
		{"empty password", "admin", ""},
		{"empty username", "", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("error = %v, want ErrInvalidCredentials", err)
			}
			// Both failure causes must present the same message.
			if err.Error() != "Invalid username or password" {
				t.Errorf("message = %q, want %q", err.Error(), "Invalid username or password")
			}
		})
	}
}

type failingStore struct{ err error }

func (s failingStore) Lookup(context.Context, string) (*directory.Principal, error) {
	return nil, s.err
}

func TestAuthenticate_StoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	a := NewAuthenticator(failingStore{err: storeErr}, password.Bcrypt{})

	_, err := a.Authenticate(context.Background(), "admin", "password")
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("internal store error reported as invalid credentials")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}

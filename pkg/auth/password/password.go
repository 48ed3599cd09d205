// Package password provides one-way password hashing and verification
// using bcrypt. Each hash carries its own random salt and work factor,
// and comparison inside bcrypt is constant-time.
package password

import "golang.org/x/crypto/bcrypt"

// Verifier hashes and verifies passwords.
type Verifier interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Bcrypt is a bcrypt-backed Verifier.
type Bcrypt struct {
	// Cost is the bcrypt work factor. Zero means bcrypt.DefaultCost.
	Cost int
}

// Ensure Bcrypt implements Verifier at compile time.
var _ Verifier = Bcrypt{}

// Hash returns the bcrypt hash of the plaintext. The plaintext is never
// retained or logged.
func (b Bcrypt) Hash(plaintext string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash. All failure
// causes (wrong password, malformed hash) collapse to false.
func (b Bcrypt) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// MustHash hashes the plaintext and panics on failure. Intended for seeding
// fixed demonstration credentials at process start.
func MustHash(plaintext string) string {
	h, err := Bcrypt{}.Hash(plaintext)
	if err != nil {
		panic("password: hashing seed credential: " + err.Error())
	}
	return h
}

// Package token issues and verifies the signed bearer tokens that carry a
// session's subject. Tokens are self-contained HS256 JWTs: the server keeps
// no record of issued tokens, and validity is a pure function of the
// signature and the embedded expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure reasons. Callers that gate requests treat all of
// them identically; they exist so logs and tests can tell them apart.
var (
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")
	ErrExpired      = errors.New("token expired")
)

// DefaultTTL is the token lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

// Codec issues and verifies signed tokens with a single symmetric secret.
// The zero value is not usable; construct with New.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a Codec signing with the given secret. If ttl is zero,
// DefaultTTL is used.
func New(secret []byte, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token: signing secret must not be empty")
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: secret, ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of the Codec that reads the current time from
// the given function. Used by tests to control expiry.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	clone := *c
	clone.now = now
	return &clone
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed token for the given subject, expiring TTL from now.
// No server-side record of the token is kept.
func (c *Codec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("token: subject must not be empty")
	}

	now := c.now()
	claims := jwtlib.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(c.ttl)),
		ID:        uuid.NewString(),
	}

	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: signing: %w", err)
	}
	return signed, nil
}

// ParseAndVerify checks the token's signature and expiry and returns the
// embedded subject. Failures map to ErrMalformed, ErrBadSignature, or
// ErrExpired; a signature mismatch is reported even when the token is also
// expired. Expiry is strict with no leeway.
func (c *Codec) ParseAndVerify(tokenStr string) (string, error) {
	claims := &jwtlib.RegisteredClaims{}
	_, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwtlib.WithValidMethods([]string{"HS256"}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenMalformed):
			return "", fmt.Errorf("%w: %w", ErrMalformed, err)
		case errors.Is(err, jwtlib.ErrTokenSignatureInvalid),
			errors.Is(err, jwtlib.ErrTokenUnverifiable):
			return "", fmt.Errorf("%w: %w", ErrBadSignature, err)
		case errors.Is(err, jwtlib.ErrTokenExpired):
			return "", fmt.Errorf("%w: %w", ErrExpired, err)
		default:
			return "", fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject claim", ErrMalformed)
	}
	return claims.Subject, nil
}

package auth

import "context"

// SecurityContext is the request-scoped association of a validated identity.
// It is constructed once per request by the Filter middleware, never mutated
// afterwards, and discarded when request processing ends.
type SecurityContext struct {
	// Subject is the authenticated username.
	Subject string

	// Roles is the role set of the principal at validation time.
	Roles []string
}

// securityContextKey is a private type for the security context key.
type securityContextKey struct{}

// WithSecurityContext stores the security context in the request context.
func WithSecurityContext(ctx context.Context, sc *SecurityContext) context.Context {
	return context.WithValue(ctx, securityContextKey{}, sc)
}

// SecurityContextFrom retrieves the security context for the request.
// Returns nil when the request is unauthenticated.
func SecurityContextFrom(ctx context.Context) *SecurityContext {
	if sc, ok := ctx.Value(securityContextKey{}).(*SecurityContext); ok {
		return sc
	}
	return nil
}

// Package auth implements the stateless bearer-token gate: turning a
// (username, password) pair into a signed token at login, mapping a replayed
// token to a request-scoped security context, and deciding per route whether
// an authenticated context is required.
//
// The pipeline is an explicit, statically ordered middleware list composed
// at startup: Filter populates (or fails to populate) the security context
// and never rejects; Require then allows public routes unconditionally and
// demands a context for everything else. Invalid credentials and invalid
// tokens are reported through ordinary error returns, never panics.
package auth

package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/petclinic-go/petclinic/pkg/observability"
)

// Class is the access class of a route.
type Class int

const (
	// Public routes require no identity.
	Public Class = iota

	// Authenticated routes require a SecurityContext.
	Authenticated
)

// Rule maps a route pattern to an access class. A pattern ending in "/"
// matches the path and everything below it; any other pattern matches
// exactly.
type Rule struct {
	Pattern string
	Class   Class
}

// Rules is an ordered list of authorization rules, evaluated first-match.
// Routes that match no rule default to Authenticated.
type Rules []Rule

// Decide returns the access class for the given request path.
func (rs Rules) Decide(path string) Class {
	for _, r := range rs {
		if strings.HasSuffix(r.Pattern, "/") && r.Pattern != "/" {
			if strings.HasPrefix(path, r.Pattern) {
				return r.Class
			}
			continue
		}
		if path == r.Pattern {
			return r.Class
		}
	}
	return Authenticated
}

// DefaultRules lists the public routes: the auth endpoints, API docs,
// health and metrics, static assets, and the root path. Everything else
// requires an authenticated context. The doc paths appear twice because
// the schema document and the UI redirect live on the bare paths while
// their assets live below them.
var DefaultRules = Rules{
	{Pattern: "/api/auth/", Class: Public},
	{Pattern: "/swagger-ui", Class: Public},
	{Pattern: "/swagger-ui/", Class: Public},
	{Pattern: "/v3/api-docs", Class: Public},
	{Pattern: "/v3/api-docs/", Class: Public},
	{Pattern: "/healthz", Class: Public},
	{Pattern: "/metrics", Class: Public},
	{Pattern: "/static/", Class: Public},
	{Pattern: "/", Class: Public},
}

// WithPublic returns a copy of the rules with the given pattern classified
// Public, evaluated ahead of the existing rules. The receiver is not
// modified.
func (rs Rules) WithPublic(pattern string) Rules {
	out := make(Rules, 0, len(rs)+1)
	out = append(out, Rule{Pattern: pattern, Class: Public})
	return append(out, rs...)
}

// Require returns middleware implementing the access decision: public
// routes pass unconditionally, authenticated routes pass only when the
// Filter attached a SecurityContext. Denials are a generic 401 with no
// internal detail.
func Require(rules Rules) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rules.Decide(r.URL.Path) == Public {
				next.ServeHTTP(w, r)
				return
			}

			if SecurityContextFrom(r.Context()) == nil {
				slog.Warn("request denied",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				observability.RequestsDeniedTotal.Inc()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/petclinic-go/petclinic/pkg/auth/token"
	"github.com/petclinic-go/petclinic/pkg/directory"
)

// bearerPrefix is the expected Authorization header scheme.
const bearerPrefix = "Bearer "

// Filter returns middleware that runs once per request, before any handler.
// It extracts a bearer token, verifies it with the codec, re-resolves the
// subject in the directory, and on full success attaches a SecurityContext
// to the request. On any failure the request proceeds without a context;
// the allow/deny decision belongs to the Require middleware.
func Filter(codec *token.Codec, store directory.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := codec.ParseAndVerify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				slog.Debug("bearer token rejected",
					"path", r.URL.Path,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			// A valid token for a principal that no longer resolves grants
			// nothing: the token outlived the account.
			p, err := store.Lookup(r.Context(), subject)
			if err != nil {
				slog.Debug("token subject no longer resolves",
					"subject", subject,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			sc := &SecurityContext{Subject: p.Username, Roles: p.Roles}
			next.ServeHTTP(w, r.WithContext(WithSecurityContext(r.Context(), sc)))
		})
	}
}

package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/petclinic-go/petclinic/pkg/auth"
	"github.com/petclinic-go/petclinic/pkg/directory"
	"github.com/petclinic-go/petclinic/pkg/observability"
)

// loginRequest is the POST /api/auth/login body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the successful login body. ExpiresIn is the token
// lifetime in seconds.
type loginResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	Username  string `json:"username"`
	ExpiresIn int    `json:"expiresIn"`
}

// validateResponse is the POST /api/auth/validate body. The endpoint never
// fails: every internal error collapses to valid=false.
type validateResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

// handleLogin authenticates a (username, password) pair and issues a token.
// The rejection message never distinguishes an unknown user from a wrong
// password.
func (a *Adapter) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, auth.ErrInvalidCredentials.Error())
		return
	}

	principal, err := a.authn.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("login failed", "error", err)
		}
		observability.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, auth.ErrInvalidCredentials.Error())
		return
	}

	tok, err := a.codec.Issue(principal.Username)
	if err != nil {
		slog.Error("issuing token", "error", err)
		observability.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	observability.LoginAttemptsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     tok,
		Type:      "Bearer",
		Username:  principal.Username,
		ExpiresIn: int(a.codec.TTL().Seconds()),
	})
}

// handleValidate checks the bearer token in the Authorization header and
// reports whether it maps to a live principal. Always responds 200.
func (a *Adapter) handleValidate(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		a.validateFailed(w)
		return
	}

	subject, err := a.codec.ParseAndVerify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		a.validateFailed(w)
		return
	}

	if _, err := a.principals.Lookup(r.Context(), subject); err != nil {
		if !errors.Is(err, directory.ErrNotFound) {
			slog.Error("validating token subject", "error", err)
		}
		a.validateFailed(w)
		return
	}

	observability.TokenValidationsTotal.WithLabelValues("valid").Inc()
	writeJSON(w, http.StatusOK, validateResponse{Valid: true, Username: subject})
}

// validateFailed writes the uniform invalid-token response.
func (a *Adapter) validateFailed(w http.ResponseWriter) {
	observability.TokenValidationsTotal.WithLabelValues("invalid").Inc()
	writeJSON(w, http.StatusOK, validateResponse{Valid: false, Error: "Invalid token"})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/marmos91/filevault/internal/api/middleware"
	"github.com/marmos91/filevault/pkg/auth"
	"github.com/marmos91/filevault/pkg/models"
)

// AuthHandler handles session issuance and revocation.
type AuthHandler struct {
	gate *auth.Gate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

type connectResponse struct {
	Token string `json:"token"`
}

// Connect handles GET /connect.
// Validates HTTP Basic credentials and issues a session token.
func (h *AuthHandler) Connect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := h.gate.IssueToken(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, connectResponse{Token: token})
}

// Disconnect handles GET /disconnect.
// Revokes the session identified by the X-Token header.
func (h *AuthHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.TokenHeader)

	if err := h.gate.RevokeToken(r.Context(), token); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

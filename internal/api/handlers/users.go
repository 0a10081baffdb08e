package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/marmos91/filevault/internal/api/middleware"
	"github.com/marmos91/filevault/pkg/models"
	"github.com/marmos91/filevault/pkg/store"
)

// UsersHandler handles account registration and identity lookup.
type UsersHandler struct {
	users store.UserStore
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(users store.UserStore) *UsersHandler {
	return &UsersHandler{users: users}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create handles POST /users.
// Registers a new account. The password is stored as a bcrypt hash only.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Missing email")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing password")
		return
	}

	hash, err := models.HashPassword(req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
	}

	if _, err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			writeError(w, http.StatusBadRequest, "Already exists")
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Me handles GET /users/me.
// Returns the identity behind the presented token.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

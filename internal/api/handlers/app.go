package handlers

import (
	"net/http"

	"github.com/marmos91/filevault/pkg/session"
	"github.com/marmos91/filevault/pkg/store"
)

// AppHandler handles service liveness and usage statistics.
type AppHandler struct {
	sessions session.Store
	store    store.Store
}

// NewAppHandler creates a new AppHandler.
func NewAppHandler(sessions session.Store, st store.Store) *AppHandler {
	return &AppHandler{sessions: sessions, store: st}
}

type statusResponse struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

type statsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Status handles GET /status.
// Reports liveness of the session and metadata stores.
func (h *AppHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Redis: h.sessions.Healthcheck(r.Context()) == nil,
		DB:    h.store.Healthcheck(r.Context()) == nil,
	}
	writeJSON(w, http.StatusOK, resp)
}

// Stats handles GET /stats.
// Returns user and file counts.
func (h *AppHandler) Stats(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.CountUsers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	files, err := h.store.CountFiles(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{Users: users, Files: files})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/filevault/internal/api/middleware"
	"github.com/marmos91/filevault/pkg/files"
)

// FilesHandler handles the file hierarchy API endpoints.
type FilesHandler struct {
	service *files.Service
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(service *files.Service) *FilesHandler {
	return &FilesHandler{service: service}
}

// Create handles POST /files.
// Creates a folder, file, or image owned by the authenticated user.
func (h *FilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req files.CreateRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	file, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, file)
}

// Show handles GET /files/{id}.
func (h *FilesHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	file, err := h.service.Show(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// Index handles GET /files?parentId=&page=.
// Lists one page of the user's files; the parentId filter is applied only
// when the query parameter carries a value. An empty value is treated the
// same as an absent parameter.
func (h *FilesHandler) Index(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var parentID *string
	if v := r.URL.Query().Get("parentId"); v != "" {
		parentID = &v
	}

	// Unparseable or negative pages fall back to page zero
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	list, err := h.service.List(r.Context(), user, parentID, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Publish handles PUT /files/{id}/publish.
func (h *FilesHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, true)
}

// Unpublish handles PUT /files/{id}/unpublish.
func (h *FilesHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, false)
}

func (h *FilesHandler) setVisibility(w http.ResponseWriter, r *http.Request, isPublic bool) {
	user := middleware.UserFromContext(r.Context())

	file, err := h.service.SetVisibility(r.Context(), user, chi.URLParam(r, "id"), isPublic)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// Data handles GET /files/{id}/data.
// Serves the raw payload with its inferred Content-Type. The requester may
// be anonymous; visibility and ownership gating happen in the service.
func (h *FilesHandler) Data(w http.ResponseWriter, r *http.Request) {
	requester := middleware.UserFromContext(r.Context()) // nil for anonymous

	data, mimeType, err := h.service.ReadContent(r.Context(), requester, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Package api exposes HTTP handlers for the roster service.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"example.com/roster/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	static  fs.FS
}

// NewHandler builds a Handler. static may be nil, in which case no UI is served.
func NewHandler(service *domain.Service, static fs.FS) *Handler {
	return &Handler{service: service, static: static}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /activities", h.listActivities)
	mux.HandleFunc("POST /activities/{name}/signup", h.signUp)
	mux.HandleFunc("DELETE /activities/{name}/signup", h.unregister)
	mux.HandleFunc("GET /healthz", healthz)

	if h.static != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(h.static)))
		// FileServer would redirect index.html to the directory.
		mux.HandleFunc("GET /static/index.html", h.serveIndex)
		mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
		})
	}
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	body, err := fs.ReadFile(h.static, "index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(body))
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.ListActivities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toActivitiesResponse(activities))
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	name, email, ok := rosterParams(w, r)
	if !ok {
		return
	}

	confirmation, err := h.service.SignUp(r.Context(), name, email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: confirmation.Message})
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request) {
	name, email, ok := rosterParams(w, r)
	if !ok {
		return
	}

	confirmation, err := h.service.Unregister(r.Context(), name, email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: confirmation.Message})
}

// rosterParams extracts the decoded activity name and the verbatim email.
// An empty email is accepted; only a missing parameter is rejected.
func rosterParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	query := r.URL.Query()
	if !query.Has("email") {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", "email query parameter is required")
		return "", "", false
	}
	return r.PathValue("name"), query.Get("email"), true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Activity not found")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		writeError(w, http.StatusBadRequest, "already_registered", "Student is already signed up for this activity")
	case errors.Is(err, domain.ErrNotRegistered):
		writeError(w, http.StatusNotFound, "not_registered", "Student is not registered for this activity")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := ErrorResponse{
		Type:   code,
		Detail: detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

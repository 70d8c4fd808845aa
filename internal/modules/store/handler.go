package store

import (
	"encoding/json"
	"net/http"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// Handler exposes store catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/", h.listStores)    // GET /api/v1/stores?q=brickell
		r.Get("/{id}", h.getStore)  // GET /api/v1/stores/{id}
	})
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	stores := h.service.List(r.URL.Query().Get("q"))
	respond(w, http.StatusOK, stores)
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Get(chi.URLParam(r, "id"))
	if err == apperr.ErrNotFound {
		respond(w, http.StatusNotFound, map[string]string{"error": "store not found"})
		return
	}
	respond(w, http.StatusOK, st)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package pod

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// Handler exposes proof-of-delivery HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/pod", func(r chi.Router) {
		r.Get("/pending", h.listPending)   // GET  /api/v1/pod/pending
		r.Post("/{order_id}", h.submit)    // POST /api/v1/pod/{order_id}
	})
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.Pending(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, pending)
}

type submitRequest struct {
	ImageData []byte `json:"image_data"`
	Notes     string `json:"notes"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Submit(r.Context(), chi.URLParam(r, "order_id"), req.ImageData, req.Notes)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case apperr.IsValidation(err):
			code = http.StatusUnprocessableEntity
		case apperr.IsConflict(err):
			code = http.StatusConflict
		case errors.Is(err, apperr.ErrNotFound):
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

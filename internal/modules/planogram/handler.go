package planogram

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/avaldezm/preventa-core/internal/modules/handoff"
	"github.com/avaldezm/preventa-core/internal/modules/store"
	"github.com/go-chi/chi/v5"
)

// Handler exposes planogram capture HTTP endpoints.
type Handler struct {
	service Service
	stores  store.Service
	handoff *handoff.Channel
}

func NewHandler(service Service, stores store.Service, hoff *handoff.Channel) *Handler {
	return &Handler{service: service, stores: stores, handoff: hoff}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/planograms/{store_id}", func(r chi.Router) {
		r.Post("/", h.startCapture)                    // POST /api/v1/planograms/{store_id}
		r.Get("/", h.getGrid)                          // GET  /api/v1/planograms/{store_id}
		r.Put("/cells/{row}/{col}", h.setCell)         // PUT  /api/v1/planograms/{store_id}/cells/{row}/{col}
		r.Get("/summary", h.getSummary)                // GET  /api/v1/planograms/{store_id}/summary
		r.Post("/review", h.sendToReview)              // POST /api/v1/planograms/{store_id}/review
	})
}

func (h *Handler) startCapture(w http.ResponseWriter, r *http.Request) {
	st, err := h.stores.Get(chi.URLParam(r, "store_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "store not found"})
		return
	}
	// Going back from order review resumes the stashed draft instead of
	// reseeding an empty grid.
	if v, ok := h.handoff.Take(handoff.SlotPlanogramDraft); ok {
		if d, ok := v.(Draft); ok && d.Store.ID == st.ID {
			h.service.Resume(d)
			g, _ := h.service.Get(st.ID)
			respond(w, http.StatusOK, g)
			return
		}
	}
	respond(w, http.StatusCreated, h.service.Start(st))
}

func (h *Handler) getGrid(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Get(chi.URLParam(r, "store_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "no capture in progress"})
		return
	}
	respond(w, http.StatusOK, g)
}

type setCellRequest struct {
	CurrentStock int `json:"current_stock"`
	ToOrder      int `json:"to_order"`
}

func (h *Handler) setCell(w http.ResponseWriter, r *http.Request) {
	row, err1 := strconv.Atoi(chi.URLParam(r, "row"))
	col, err2 := strconv.Atoi(chi.URLParam(r, "col"))
	if err1 != nil || err2 != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "row and col must be integers"})
		return
	}
	var req setCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	cell, err := h.service.SetCell(chi.URLParam(r, "store_id"), row, col, req.CurrentStock, req.ToOrder)
	if err != nil {
		code := http.StatusUnprocessableEntity
		if errors.Is(err, apperr.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, cell)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Summary(chi.URLParam(r, "store_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "no capture in progress"})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) sendToReview(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Review(chi.URLParam(r, "store_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "no capture in progress"})
		return
	}
	h.handoff.Put(handoff.SlotOrderReview, d)
	respond(w, http.StatusOK, map[string]string{"status": "draft ready for review"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/avaldezm/preventa-core/internal/modules/handoff"
	"github.com/avaldezm/preventa-core/internal/modules/planogram"
	"github.com/go-chi/chi/v5"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service    Service
	planograms planogram.Service
	handoff    *handoff.Channel
}

func NewHandler(service Service, planograms planogram.Service, hoff *handoff.Channel) *Handler {
	return &Handler{service: service, planograms: planograms, handoff: hoff}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.sendOrder)             // POST /api/v1/orders
		r.Get("/", h.listOrders)             // GET  /api/v1/orders?status=pending&q=brickell
		r.Post("/review/edit", h.editOrder)  // POST /api/v1/orders/review/edit
		r.Get("/{id}", h.getOrder)           // GET  /api/v1/orders/{id}
		r.Post("/{id}/proof", h.attachProof) // POST /api/v1/orders/{id}/proof
	})
}

// sendOrder consumes the reviewed draft stashed by the planogram screen.
func (h *Handler) sendOrder(w http.ResponseWriter, r *http.Request) {
	v, ok := h.handoff.Take(handoff.SlotOrderReview)
	if !ok {
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": "no order draft to send"})
		return
	}
	draft, ok := v.(planogram.Draft)
	if !ok {
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": "no order draft to send"})
		return
	}
	o, err := h.service.CreateFromDraft(r.Context(), draft)
	if err != nil {
		if apperr.IsValidation(err) {
			// Hand the draft back so the rep can keep editing.
			h.handoff.Put(handoff.SlotOrderReview, draft)
			respond(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	// Capture is spent once the order exists.
	h.planograms.Discard(draft.Store.ID)
	h.handoff.Put(handoff.SlotConfirmation, handoff.Confirmation{OrderID: o.ID, ShowConfirmation: true})
	respond(w, http.StatusCreated, o)
}

// editOrder sends the reviewed draft back to the capture screen so the rep
// can change quantities before resubmitting.
func (h *Handler) editOrder(w http.ResponseWriter, r *http.Request) {
	v, ok := h.handoff.Take(handoff.SlotOrderReview)
	if !ok {
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": "no order draft to edit"})
		return
	}
	draft, ok := v.(planogram.Draft)
	if !ok {
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": "no order draft to edit"})
		return
	}
	h.handoff.Put(handoff.SlotPlanogramDraft, draft)
	respond(w, http.StatusOK, map[string]string{"status": "draft returned for editing"})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		Status:     Status(r.URL.Query().Get("status")),
		SearchText: r.URL.Query().Get("q"),
	}
	orders, err := h.service.List(r.Context(), f)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

type detailResponse struct {
	*Order
	ShowConfirmation bool `json:"show_confirmation,omitempty"`
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	resp := detailResponse{Order: o}
	// The just-created flag is shown once, then dropped.
	if v, ok := h.handoff.Take(handoff.SlotConfirmation); ok {
		if c, ok := v.(handoff.Confirmation); ok && c.OrderID == id {
			resp.ShowConfirmation = c.ShowConfirmation
		}
	}
	respond(w, http.StatusOK, resp)
}

type attachProofRequest struct {
	ImageData []byte `json:"image_data"`
	Notes     string `json:"notes"`
}

// attachProof completes the order directly, without the simulated upload the
// delivery flow adds.
func (h *Handler) attachProof(w http.ResponseWriter, r *http.Request) {
	var req attachProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.CompleteWithProof(r.Context(), chi.URLParam(r, "id"), req.ImageData, req.Notes)
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

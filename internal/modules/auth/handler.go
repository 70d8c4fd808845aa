package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.login)                      // POST /api/v1/auth/login
		r.Post("/logout", h.logout)                    // POST /api/v1/auth/logout
		r.Get("/session", h.session)                   // GET  /api/v1/auth/session
		r.Post("/forgot-password", h.forgotPassword)   // POST /api/v1/auth/forgot-password
		r.Post("/reset-password", h.resetPassword)     // POST /api/v1/auth/reset-password
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sess, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	respond(w, http.StatusOK, sess)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.service.Session()
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "no active session"})
		return
	}
	respond(w, http.StatusOK, sess)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	msg, err := h.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": msg})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	msg, err := h.service.ResetPassword(r.Context(), req.Token, req.Email, req.NewPassword)
	if err != nil {
		respondAuthError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": msg})
}

func respondAuthError(w http.ResponseWriter, err error) {
	if apperr.IsValidation(err) {
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	var aerr *Error
	if !errors.As(err, &aerr) {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	code := http.StatusBadGateway
	switch aerr.Kind {
	case KindInvalidCredentials, KindUnauthorized:
		code = http.StatusUnauthorized
	case KindUserNotRegistered:
		code = http.StatusNotFound
	case KindConnection:
		code = http.StatusServiceUnavailable
	}
	respond(w, code, map[string]string{"error": aerr.Message, "kind": string(aerr.Kind)})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package auth

import (
	"context"

	"github.com/avaldezm/preventa-core/internal/apperr"
	"github.com/avaldezm/preventa-core/internal/platform/metrics"
)

// Service is the authentication flow: login classification, the session
// slot, and the password-recovery calls.
type Service interface {
	// Login authenticates against the remote API. On success the session is
	// persisted and becomes the process-wide active session; on failure the
	// returned error is an *Error carrying the classified kind.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Logout clears the persisted credential and deactivates the session.
	Logout(ctx context.Context) error

	// Session returns the active session, if any.
	Session() (*Session, bool)

	// ForgotPassword requests a recovery email.
	ForgotPassword(ctx context.Context, email string) (string, error)

	// ResetPassword redeems a recovery token for a new password.
	ResetPassword(ctx context.Context, token, email, newPassword string) (string, error)
}

type service struct {
	client   *Client
	sessions *SessionStore
	metrics  *metrics.Registry
}

// NewService creates the auth service. metrics may be nil.
func NewService(client *Client, sessions *SessionStore, m *metrics.Registry) Service {
	return &service{client: client, sessions: sessions, metrics: m}
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	res, err := s.client.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	sess, aerr := normalize(res, err, email)
	if aerr != nil {
		s.count(string(aerr.Kind))
		return nil, aerr
	}
	if err := s.sessions.Save(sess); err != nil {
		return nil, err
	}
	s.count("success")
	return sess, nil
}

func (s *service) Logout(ctx context.Context) error {
	return s.sessions.Clear()
}

func (s *service) Session() (*Session, bool) { return s.sessions.Current() }

func (s *service) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", apperr.Validationf("el email es obligatorio")
	}
	res, err := s.client.post(ctx, "/auth/forgot-password", map[string]string{"email": email})
	if err != nil {
		return "", &Error{Kind: KindConnection, Message: msgConnection}
	}
	if res.status < 200 || res.status >= 300 {
		return "", classifyFailure(res.status, res.payload)
	}
	return firstNonEmpty(res.payload.Message, "Revisa tu correo para continuar"), nil
}

func (s *service) ResetPassword(ctx context.Context, token, email, newPassword string) (string, error) {
	if token == "" || email == "" {
		return "", apperr.Validationf("el token y el email de recuperación son obligatorios")
	}
	if newPassword == "" {
		return "", apperr.Validationf("la nueva contraseña es obligatoria")
	}
	res, err := s.client.post(ctx, "/auth/reset-password", map[string]string{
		"token":       token,
		"email":       email,
		"newPassword": newPassword,
	})
	if err != nil {
		return "", &Error{Kind: KindConnection, Message: msgConnection}
	}
	if res.status < 200 || res.status >= 300 {
		return "", classifyFailure(res.status, res.payload)
	}
	return firstNonEmpty(res.payload.Message, "Contraseña actualizada"), nil
}

func (s *service) count(kind string) {
	if s.metrics != nil {
		s.metrics.LoginOutcomes.WithLabelValues(kind).Inc()
	}
}

package auth

import (
	"sync"
	"time"

	"github.com/avaldezm/preventa-core/internal/platform/localstore"
	"github.com/dgrijalva/jwt-go"
)

// sessionSlot is the single named slot holding the device session.
const sessionSlot = "session"

// SessionStore owns the device's one session: the in-memory active copy plus
// the persisted slot. Saving overwrites whatever was there before.
type SessionStore struct {
	mu     sync.Mutex
	db     *localstore.DB
	active *Session
}

// NewSessionStore loads any persisted session into memory. db may be nil for
// a purely in-memory store (tests).
func NewSessionStore(db *localstore.DB) *SessionStore {
	s := &SessionStore{db: db}
	if db != nil {
		var sess Session
		if db.ReadSlot(sessionSlot, &sess) && sess.Token != "" {
			s.active = &sess
		}
	}
	return s
}

// Current returns the active session, if any.
func (s *SessionStore) Current() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, false
	}
	copy := *s.active
	return &copy, true
}

// Token returns the active bearer token, or "".
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ""
	}
	return s.active.Token
}

// Save persists the session and marks it active.
func (s *SessionStore) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *sess
	s.active = &copy
	if s.db != nil {
		return s.db.WriteSlot(sessionSlot, sess)
	}
	return nil
}

// Clear drops both the persisted slot and the active session.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	if s.db != nil {
		return s.db.ClearSlot(sessionSlot)
	}
	return nil
}

// Expired reports whether the stored token carries an exp claim in the past.
// The client cannot verify the token's signature; it only peeks at the
// claims the way the backend's own middleware would. Tokens without a
// readable exp claim are treated as unexpired.
func (s *SessionStore) Expired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return now.Unix() >= int64(exp)
}

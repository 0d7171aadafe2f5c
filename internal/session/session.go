// Package session manages the admin cookie session. The cookie mirrors the
// shape the admin SPA already relies on: HttpOnly, SameSite=Lax, Secure
// behind HTTPS, holding a single is_admin flag.
package session

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "smr_admin"
	isAdminKey  = "is_admin"
)

type Manager struct {
	store *sessions.CookieStore
}

// New derives separate signing and encryption keys from the configured
// secret, which is stronger than signing alone and keeps key lengths valid
// for securecookie.
func New(secret string, secure bool) *Manager {
	h := sha256.Sum256([]byte("auth:" + secret))
	e := sha256.Sum256([]byte("enc:" + secret))

	store := sessions.NewCookieStore(h[:], e[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}

	return &Manager{store: store}
}

// IsAdmin reports whether the request carries a valid admin session.
func (m *Manager) IsAdmin(r *http.Request) bool {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	v, ok := s.Values[isAdminKey].(bool)
	return ok && v
}

// SetAdmin marks the session as an admin session and writes the Set-Cookie
// header.
func (m *Manager) SetAdmin(w http.ResponseWriter, r *http.Request) error {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		// a tampered or stale cookie decodes to a fresh session; keep going
		s, _ = m.store.New(r, sessionName)
	}
	s.Values[isAdminKey] = true
	return s.Save(r, w)
}

// Clear drops the session entirely.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		s, _ = m.store.New(r, sessionName)
	}
	for k := range s.Values {
		delete(s.Values, k)
	}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

package middleware

import (
	"net/http"

	"github.com/smr-site/reviews-api/internal/api"
)

// Sessions is the part of the session manager the middleware needs.
type Sessions interface {
	IsAdmin(r *http.Request) bool
}

// Auth holds dependencies for admin access middleware
type Auth struct {
	sessions Sessions
}

func NewAuth(sessions Sessions) *Auth {
	return &Auth{sessions: sessions}
}

// AdminOnly returns middleware that requires an admin session.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.sessions.IsAdmin(r) {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminWrite returns middleware for mutating admin endpoints: an admin
// session plus the marker header on any mutating method.
func (a *Auth) AdminWrite() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.sessions.IsAdmin(r) {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if isMutating(r.Method) && r.Header.Get(api.MarkerHeaderName) != api.MarkerHeaderValue {
				api.WriteError(w, http.StatusBadRequest, "bad_request")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/smr-site/reviews-api/internal/api"
	"github.com/smr-site/reviews-api/internal/logger"
)

// Me handles GET /api/admin/me. It never fails: the admin SPA uses it to
// decide whether to show the login form.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, api.SessionResponse{OK: true, IsAdmin: h.sessions.IsAdmin(r)})
}

// Login handles POST /api/admin/login. The password arrives as JSON or as a
// form field.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var password string
	if isJSON(r) {
		var body struct {
			Password string `json:"password"`
		}
		// tolerate malformed JSON: an empty password fails the check below
		json.NewDecoder(r.Body).Decode(&body)
		password = body.Password
	} else {
		password = formValue(r, "password")
	}

	if err := h.auth.Login(password); err != nil {
		api.WriteServiceError(w, err)
		return
	}

	if err := h.sessions.SetAdmin(w, r); err != nil {
		logger.Log.Error("save session", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}

	api.WriteJSON(w, api.StatusResponse{OK: true})
}

// Logout handles POST /api/admin/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		logger.Log.Error("clear session", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}
	api.WriteJSON(w, api.StatusResponse{OK: true})
}

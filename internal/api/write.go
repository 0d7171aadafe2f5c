package api

import (
	"encoding/json"
	"net/http"

	"github.com/smr-site/reviews-api/internal/errors"
	"github.com/smr-site/reviews-api/internal/logger"
)

// WriteJSON writes v as a JSON response with status 200.
func WriteJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encode response", "error", err)
	}
}

// WriteError writes the JSON error envelope the admin SPA and client expect.
func WriteError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(StatusResponse{OK: false, Error: code}); err != nil {
		logger.Log.Error("encode error response", "error", err)
	}
}

// WriteServiceError maps a service error onto the envelope: an
// ErrorWithStatusCode keeps its status and message, anything else becomes a
// 500 server_error with the cause logged but not leaked.
func WriteServiceError(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		WriteError(w, e.StatusCode, e.Message)
		return
	}
	logger.Log.Error("internal error", "error", err)
	WriteError(w, http.StatusInternalServerError, "server_error")
}

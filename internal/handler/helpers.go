package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// formValue reads a field from a urlencoded or multipart form body. Parse
// errors surface through FormValue returning "", which every caller treats
// as a missing field.
func formValue(r *http.Request, name string) string {
	if isMultipart(r) {
		r.ParseMultipartForm(1 << 20)
	}
	return strings.TrimSpace(r.FormValue(name))
}

func isMultipart(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "multipart/form-data"
}

func isJSON(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "application/json"
}

// queryLimit parses the limit query parameter, falling back to def when the
// parameter is absent or not an integer.
func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return limit
}

var errBadId = errors.New("bad id")

// parseId parses a stringified positive integer id, the only id format the
// write endpoints accept.
func parseId(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errBadId
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, errBadId
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errBadId
	}
	return id, nil
}

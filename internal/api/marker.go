package api

// The marker header is attached by the admin UI (and the Go client) to every
// request. It is a lightweight origin signal, not a CSRF token: a plain
// cross-site form post cannot set custom headers, which is all it stops.
const (
	MarkerHeaderName  = "X-Requested-With"
	MarkerHeaderValue = "smr-admin"
)

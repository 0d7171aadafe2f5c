package apiclient

import "github.com/smr-site/reviews-api/internal/api"

// Me checks whether the session cookie held by the client is an admin
// session. The endpoint answers 200 either way.
func (c *APIClient) Me() (api.SessionResponse, error) {
	var session api.SessionResponse
	err := c.get("/me", nil, &session)
	return session, err
}

// Login exchanges the admin password for a session cookie, which the
// client's jar retains for subsequent calls.
func (c *APIClient) Login(password string) error {
	return c.postForm("/login", map[string]string{"password": password}, nil)
}

// Logout invalidates the current session on the server and drops the cookie.
func (c *APIClient) Logout() error {
	return c.postForm("/logout", nil, nil)
}

// Package apiclient is a Go client for the admin surface of the reviews
// backend. It mirrors what the admin SPA does in the browser: every request
// carries the session cookie and the marker header, writes are encoded as
// multipart forms, and error bodies are unwrapped into plain messages.
package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/smr-site/reviews-api/internal/api"
	internal_errors "github.com/smr-site/reviews-api/internal/errors"
)

const basePath = "/api/admin"

// APIClient struct handles all communication with the admin API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

// New creates a client for the backend at baseURL. The client keeps its own
// cookie jar so the session survives across calls, the way a browser would.
func New(baseURL string) *APIClient {
	jar, _ := cookiejar.New(nil)
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{Jar: jar},
	}
}

// do is the single, unified helper for making API requests. Every request
// gets the marker header; contentType is optional for bodyless requests.
func (c *APIClient) do(method, path string, query url.Values, contentType string, body io.Reader) (*http.Response, error) {
	u := c.BaseURL + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set(api.MarkerHeaderName, api.MarkerHeaderValue)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// decode drains resp and either fills out from the JSON body or, on a
// non-2xx status, returns an ErrorWithStatusCode whose message is the
// server's `error` field when one can be extracted.
func (c *APIClient) decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    errorMessage(raw, resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	// An unparseable success body is treated as an empty payload, not an
	// error: out keeps its zero value.
	if err := json.Unmarshal(raw, out); err != nil {
		return nil
	}
	return nil
}

// errorMessage pulls the `error` field out of an error body. Non-string
// values are coerced to text; a body that is not a JSON object falls back
// to "HTTP <status>".
func errorMessage(raw []byte, status int) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		switch v := body["error"].(type) {
		case nil:
		case string:
			return v
		default:
			return fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

// get issues a GET and decodes the response into out.
func (c *APIClient) get(path string, query url.Values, out any) error {
	resp, err := c.do("GET", path, query, "", nil)
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

// postForm issues a POST with the given fields encoded as a multipart form.
// Field-only forms are small, so the body is buffered rather than streamed.
func (c *APIClient) postForm(path string, fields map[string]string, out any) error {
	var buf strings.Builder
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to encode form field %q: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	resp, err := c.do("POST", path, nil, writer.FormDataContentType(), strings.NewReader(buf.String()))
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

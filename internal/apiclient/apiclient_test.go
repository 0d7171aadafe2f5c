package apiclient

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smr-site/reviews-api/internal/api"
	internal_errors "github.com/smr-site/reviews-api/internal/errors"
)

// capturedRequest records what the fake backend saw so tests can assert on
// the wire shape of each call.
type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Marker string
	Form   map[string]string
	Files  map[string]string // field name -> filename
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Query = r.URL.RawQuery
		captured.Marker = r.Header.Get(api.MarkerHeaderName)
		captured.Form = map[string]string{}
		captured.Files = map[string]string{}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			require.NoError(t, r.ParseMultipartForm(32<<20))
			for name, values := range r.MultipartForm.Value {
				captured.Form[name] = values[0]
			}
			for name, headers := range r.MultipartForm.File {
				captured.Files[name] = headers[0].Filename
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestSuccessBodyReturnedVerbatim(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"ok":true,"is_admin":true}`)
	client := New(srv.URL)

	session, err := client.Me()

	require.NoError(t, err)
	assert.True(t, session.OK)
	assert.True(t, session.IsAdmin)
	assert.Equal(t, "GET", captured.Method)
	assert.Equal(t, "/api/admin/me", captured.Path)
}

func TestErrorFieldBecomesMessage(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusForbidden, `{"ok":false,"error":"invalid_code"}`)
	client := New(srv.URL)

	_, err := client.Me()

	require.Error(t, err)
	assert.Equal(t, "invalid_code", err.Error())

	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestNonStringErrorFieldIsCoerced(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadRequest, `{"error":42}`)
	client := New(srv.URL)

	_, err := client.Me()

	require.Error(t, err)
	assert.Equal(t, "42", err.Error())
}

func TestUnparseableErrorBodyFallsBackToStatus(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadGateway, `upstream exploded`)
	client := New(srv.URL)

	_, err := client.Me()

	require.Error(t, err)
	assert.Equal(t, "HTTP 502", err.Error())
}

func TestUnparseableSuccessBodyIsEmptyPayload(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `not json at all`)
	client := New(srv.URL)

	session, err := client.Me()

	require.NoError(t, err)
	assert.False(t, session.OK)
	assert.False(t, session.IsAdmin)
}

func TestNetworkErrorIsWrapped(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{}`)
	srv.Close()
	client := New(srv.URL)

	_, err := client.Me()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
}

func TestMarkerHeaderOnEveryRequest(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"ok":true}`)
	client := New(srv.URL)

	calls := map[string]func() error{
		"me":          func() error { _, err := client.Me(); return err },
		"list codes":  func() error { _, err := client.ListCodes(0); return err },
		"add codes":   func() error { _, err := client.AddCodes("111"); return err },
		"delete code": func() error { _, err := client.DeleteCode("111"); return err },
		"logout":      func() error { return client.Logout() },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			captured.Marker = ""
			require.NoError(t, call())
			assert.Equal(t, api.MarkerHeaderValue, captured.Marker)
		})
	}
}

func TestCookiesSurviveAcrossCalls(t *testing.T) {
	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/login":
			http.SetCookie(w, &http.Cookie{Name: "smr_admin", Value: "session-token", Path: "/"})
		case "/api/admin/me":
			cookie, err := r.Cookie("smr_admin")
			sawCookie = err == nil && cookie.Value == "session-token"
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()
	client := New(srv.URL)

	require.NoError(t, client.Login("hunter2"))
	_, err := client.Me()
	require.NoError(t, err)
	assert.True(t, sawCookie, "me request should carry the cookie set by login")
}

func TestListCodesLimit(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"ok":true}`)
	client := New(srv.URL)

	t.Run("default", func(t *testing.T) {
		_, err := client.ListCodes(0)
		require.NoError(t, err)
		assert.Equal(t, "limit=500", captured.Query)
	})
	t.Run("explicit", func(t *testing.T) {
		_, err := client.ListCodes(100)
		require.NoError(t, err)
		assert.Equal(t, "limit=100", captured.Query)
	})
}

func TestListReviewsLimit(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"ok":true,"total":0,"reviews":[]}`)
	client := New(srv.URL)

	t.Run("default", func(t *testing.T) {
		_, err := client.ListReviews(-1)
		require.NoError(t, err)
		assert.Equal(t, "limit=500", captured.Query)
		assert.Equal(t, "/api/admin/reviews", captured.Path)
	})
	t.Run("explicit", func(t *testing.T) {
		_, err := client.ListReviews(25)
		require.NoError(t, err)
		assert.Equal(t, "limit=25", captured.Query)
	})
}

func TestDeleteCodeSendsMultipartField(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"ok":true,"deleted":1}`)
	client := New(srv.URL)

	result, err := client.DeleteCode("123")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, "POST", captured.Method)
	assert.Equal(t, "/api/admin/codes/delete", captured.Path)
	assert.Equal(t, map[string]string{"code": "123"}, captured.Form)
}

func TestAddCodesSendsTextBlob(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"ok":true,"submitted":2}`)
	client := New(srv.URL)

	result, err := client.AddCodes("111\n222")

	require.NoError(t, err)
	assert.Equal(t, 2, result.Submitted)
	assert.Equal(t, "111\n222", captured.Form["codes"])
}

func TestDeleteReviewStringifiesId(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"ok":true}`)
	client := New(srv.URL)

	require.NoError(t, client.DeleteReview(42))

	assert.Equal(t, "/api/admin/reviews/delete", captured.Path)
	assert.Equal(t, "42", captured.Form["id"])
}

func TestUploadGalleryImage(t *testing.T) {
	t.Run("alt omitted when empty", func(t *testing.T) {
		srv, captured := newTestServer(t, http.StatusOK, `{"ok":true,"image":{"id":7}}`)
		client := New(srv.URL)

		result, err := client.UploadGalleryImage("cake.png", strings.NewReader("png-bytes"), "image/png", "cakes", "")

		require.NoError(t, err)
		assert.Equal(t, int64(7), result.Image.Id)
		assert.Equal(t, "/api/admin/gallery/upload", captured.Path)
		assert.Equal(t, "cakes", captured.Form["category"])
		assert.NotContains(t, captured.Form, "alt")
		assert.Equal(t, "cake.png", captured.Files["file"])
	})

	t.Run("alt included when set", func(t *testing.T) {
		srv, captured := newTestServer(t, http.StatusOK, `{"ok":true}`)
		client := New(srv.URL)

		_, err := client.UploadGalleryImage("cake.png", strings.NewReader("png-bytes"), "image/png", "cakes", "a chocolate cake")

		require.NoError(t, err)
		assert.Equal(t, "a chocolate cake", captured.Form["alt"])
	})

	t.Run("quotes in filename are escaped", func(t *testing.T) {
		srv, captured := newTestServer(t, http.StatusOK, `{"ok":true}`)
		client := New(srv.URL)

		_, err := client.UploadGalleryImage(`my "best" cake.png`, strings.NewReader("x"), "", "cakes", "")

		require.NoError(t, err)
		assert.Equal(t, `my "best" cake.png`, captured.Files["file"])
	})
}

func TestDeleteGalleryImage(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"ok":true}`)
	client := New(srv.URL)

	require.NoError(t, client.DeleteGalleryImage(9))

	assert.Equal(t, "/api/admin/gallery/delete", captured.Path)
	assert.Equal(t, "9", captured.Form["id"])
}

func TestExportUnusedCodesCSV(t *testing.T) {
	t.Run("returns raw bytes", func(t *testing.T) {
		srv, captured := newTestServer(t, http.StatusOK, "code\n111\n222\n")
		client := New(srv.URL)

		raw, err := client.ExportUnusedCodesCSV()

		require.NoError(t, err)
		assert.Equal(t, "code\n111\n222\n", string(raw))
		assert.Equal(t, "/api/admin/codes/unused.csv", captured.Path)
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusUnauthorized, `{"ok":false,"error":"unauthorized"}`)
		client := New(srv.URL)

		_, err := client.ExportUnusedCodesCSV()

		require.Error(t, err)
		assert.Equal(t, "unauthorized", err.Error())
	})
}

func TestLoginFailure(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusUnauthorized, `{"ok":false,"error":"bad_password"}`)
	client := New(srv.URL)

	err := client.Login("wrong")

	require.Error(t, err)
	assert.Equal(t, "bad_password", err.Error())
	assert.Equal(t, "wrong", captured.Form["password"])
}

package validation

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// uploadedFileHeader builds a real *multipart.FileHeader by round-tripping a
// multipart request, the same way the handler receives it.
func uploadedFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestValidateImage(t *testing.T) {
	allowed := []string{"image/png", "image/jpeg"}

	t.Run("valid png with dimensions", func(t *testing.T) {
		fh := uploadedFileHeader(t, "photo.png", "image/png", pngBytes(t, 12, 34))

		pf, err := ValidateImage(fh, allowed)
		require.NoError(t, err)
		defer pf.Data.(io.Closer).Close()

		assert.Equal(t, "photo.png", pf.Filename)
		assert.Equal(t, "image/png", pf.MimeType)
		require.NotNil(t, pf.Width)
		require.NotNil(t, pf.Height)
		assert.Equal(t, 12, *pf.Width)
		assert.Equal(t, 34, *pf.Height)
	})

	t.Run("mime detected from extension when generic", func(t *testing.T) {
		fh := uploadedFileHeader(t, "photo.png", "application/octet-stream", pngBytes(t, 2, 2))

		pf, err := ValidateImage(fh, allowed)
		require.NoError(t, err)
		defer pf.Data.(io.Closer).Close()

		assert.Equal(t, "image/png", pf.MimeType)
	})

	t.Run("disallowed mime rejected", func(t *testing.T) {
		fh := uploadedFileHeader(t, "notes.txt", "text/plain", []byte("hello"))

		_, err := ValidateImage(fh, allowed)
		assert.ErrorIs(t, err, ErrInvalidMimeType)
	})

	t.Run("undecodable image keeps nil dimensions", func(t *testing.T) {
		fh := uploadedFileHeader(t, "broken.png", "image/png", []byte("not a png"))

		pf, err := ValidateImage(fh, allowed)
		require.NoError(t, err)
		defer pf.Data.(io.Closer).Close()

		assert.Nil(t, pf.Width)
		assert.Nil(t, pf.Height)
	})

	t.Run("file readable from the start after validation", func(t *testing.T) {
		raw := pngBytes(t, 3, 3)
		fh := uploadedFileHeader(t, "photo.png", "image/png", raw)

		pf, err := ValidateImage(fh, allowed)
		require.NoError(t, err)
		defer pf.Data.(io.Closer).Close()

		got, err := io.ReadAll(pf.Data)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})
}

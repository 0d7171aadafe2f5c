package apiclient

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/smr-site/reviews-api/internal/api"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// ListGallery returns all gallery images, newest first.
func (c *APIClient) ListGallery() (api.GalleryResponse, error) {
	var gallery api.GalleryResponse
	err := c.get("/gallery", nil, &gallery)
	return gallery, err
}

// UploadGalleryImage streams file as a multipart upload. The form carries
// the file under the field name "file" plus the category; alt is included
// only when non-empty. contentType may be empty if the caller does not know
// the file's MIME type, the server sniffs it anyway.
func (c *APIClient) UploadGalleryImage(filename string, file io.Reader, contentType, category, alt string) (api.GalleryUploadResponse, error) {
	var result api.GalleryUploadResponse

	// Stream the body through a pipe so the whole file never sits in memory.
	pipeReader, pipeWriter := io.Pipe()
	writer := multipart.NewWriter(pipeWriter)

	go func() {
		defer pipeWriter.Close()
		defer writer.Close()

		if err := writer.WriteField("category", category); err != nil {
			pipeWriter.CloseWithError(err)
			return
		}
		if alt != "" {
			if err := writer.WriteField("alt", alt); err != nil {
				pipeWriter.CloseWithError(err)
				return
			}
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}

		part, err := writer.CreatePart(h)
		if err != nil {
			pipeWriter.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pipeWriter.CloseWithError(err)
			return
		}
	}()

	resp, err := c.do("POST", "/gallery/upload", nil, writer.FormDataContentType(), pipeReader)
	if err != nil {
		return result, err
	}
	return result, c.decode(resp, &result)
}

// DeleteGalleryImage removes a gallery image by id, including its file on
// disk server-side.
func (c *APIClient) DeleteGalleryImage(id int64) error {
	fields := map[string]string{"id": strconv.FormatInt(id, 10)}
	return c.postForm("/gallery/delete", fields, nil)
}

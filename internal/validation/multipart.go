package validation

import (
	"fmt"
	"net/http"
)

// ValidateAndParseMultipart validates request size and parses the multipart form.
// MaxBytesReader is the security boundary: it stops reading at the limit, so
// an oversized upload cannot exhaust the server no matter what the client
// claims in Content-Length.
func ValidateAndParseMultipart(r *http.Request, w http.ResponseWriter, maxSize int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return fmt.Errorf("%w: failed to parse multipart form", ErrPayloadTooLarge)
	}

	return nil
}

// CalculateMaxRequestSize returns the maximum request size including overhead buffer.
// The buffer (typically 1 MiB) covers form fields and multipart framing.
func CalculateMaxRequestSize(maxFileSize int64, bufferSize int64) int64 {
	return maxFileSize + bufferSize
}

// FormatSizeMB converts bytes to megabytes for user-facing error messages.
func FormatSizeMB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}

package validation

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/smr-site/reviews-api/internal/domain"
)

// ValidateImage checks a single uploaded file against the allowed image MIME
// types and extracts its dimensions. The returned PendingFile holds the still
// open multipart file; the caller owns closing it.
func ValidateImage(fileHeader *multipart.FileHeader, allowedMimes []string) (*domain.PendingFile, error) {
	allowed := make(map[string]bool, len(allowedMimes))
	for _, m := range allowedMimes {
		allowed[m] = true
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	mimeType, err := DetectMimeType(fileHeader)
	if err != nil {
		file.Close()
		return nil, err
	}

	if !allowed[mimeType] {
		file.Close()
		return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
	}

	width, height := ExtractImageDimensions(file, mimeType)

	return &domain.PendingFile{
		Filename:  fileHeader.Filename,
		SizeBytes: fileHeader.Size,
		MimeType:  mimeType,
		Width:     width,
		Height:    height,
		Data:      file,
	}, nil
}

func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	// If no Content-Type or it's generic, detect from extension
	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(fileHeader.Filename)
		if detectedType := mime.TypeByExtension(ext); detectedType != "" {
			mimeType = detectedType
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fileHeader.Filename)
	}

	return mimeType, nil
}

func ExtractImageDimensions(file multipart.File, mimeType string) (*int, *int) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, nil
	}

	img, _, err := image.DecodeConfig(file)
	if err != nil {
		file.Seek(0, 0)
		return nil, nil
	}

	// Reset file pointer after reading
	file.Seek(0, 0)

	width, height := img.Width, img.Height
	return &width, &height
}

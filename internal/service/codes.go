package service

import (
	"fmt"
	"strings"

	"github.com/smr-site/reviews-api/internal/domain"
	"github.com/smr-site/reviews-api/internal/errors"
)

// to mock service in tests
type CodesService interface {
	Add(raw string) (int, error)
	Delete(code string) (int, error)
	Summary(previewLimit int) (*domain.CodeSummary, error)
	UnusedCSV() ([]byte, error)
}

const (
	defaultPreviewLimit = 300
	minPreviewLimit     = 50
	maxPreviewLimit     = 2000
)

type Codes struct {
	storage CodesStorage
}

type CodesStorage interface {
	InsertCodes(codes []string) error
	DeleteCode(code string) (int, error)
	CodeSummary(previewLimit int) (*domain.CodeSummary, error)
	UnusedCodes() ([]string, error)
}

func NewCodes(storage CodesStorage) *Codes {
	return &Codes{storage: storage}
}

// Add parses a newline-separated code blob, one 3-digit code per line, and
// inserts the batch. Duplicates in the pool are ignored. Returns the number
// of codes submitted.
func (c *Codes) Add(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &errors.ErrorWithStatusCode{Message: "no_codes", StatusCode: 400}
	}

	var codes []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !domain.ValidCode(line) {
			return 0, &errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("invalid_code_format:%s", line),
				StatusCode: 400,
			}
		}
		codes = append(codes, line)
	}

	if err := c.storage.InsertCodes(codes); err != nil {
		return 0, err
	}
	return len(codes), nil
}

// Delete removes one code and returns how many rows were deleted.
func (c *Codes) Delete(code string) (int, error) {
	if !domain.ValidCode(code) {
		return 0, &errors.ErrorWithStatusCode{Message: "invalid_code_format", StatusCode: 400}
	}
	return c.storage.DeleteCode(code)
}

// Summary returns pool counts plus previews, clamping the preview size to a
// range that keeps the admin page responsive.
func (c *Codes) Summary(previewLimit int) (*domain.CodeSummary, error) {
	if previewLimit <= 0 {
		previewLimit = defaultPreviewLimit
	}
	previewLimit = max(minPreviewLimit, min(previewLimit, maxPreviewLimit))

	return c.storage.CodeSummary(previewLimit)
}

// UnusedCSV renders all unused codes as a one-column CSV document.
func (c *Codes) UnusedCSV() ([]byte, error) {
	codes, err := c.storage.UnusedCodes()
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("code\n")
	for _, code := range codes {
		b.WriteString(code)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

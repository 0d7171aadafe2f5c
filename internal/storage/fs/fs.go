// Package fs stores gallery media on the local filesystem under a single
// root directory, one subdirectory per category.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// filepath.Clean prevents path traversal like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Root returns the media root path, for mounting the static file server.
func (s *Storage) Root() string {
	return s.rootPath
}

// Save writes a file under category/filename and returns the path relative
// to the root. Both components are sanitized to a single path element.
func (s *Storage) Save(fileData io.Reader, category, filename string) (string, error) {
	relativePath := filepath.Join(sanitizeElement(category), sanitizeElement(filename))
	fullPath := filepath.Join(s.rootPath, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create category directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		os.Remove(fullPath) // best effort cleanup of the partial file
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return filepath.ToSlash(relativePath), nil
}

// Delete removes a stored file. A file that is already gone is not an error.
func (s *Storage) Delete(relativePath string) error {
	fullPath := filepath.Join(s.rootPath, filepath.Clean("/"+relativePath))

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// sanitizeElement reduces s to a single safe path element.
func sanitizeElement(s string) string {
	s = strings.ReplaceAll(s, "\\", "/")
	s = filepath.Base(filepath.Clean("/" + s))
	if s == "/" || s == "." {
		return "_"
	}
	return s
}

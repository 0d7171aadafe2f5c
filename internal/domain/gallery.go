package domain

import "io"

// GalleryImage is a stored gallery entry. Path is relative to the media
// root and doubles as the public URL suffix.
type GalleryImage struct {
	Id           int64  `json:"id"`
	Path         string `json:"path"`
	OriginalName string `json:"original_name,omitempty"`
	Category     string `json:"category"`
	Alt          string `json:"alt,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	Width        *int   `json:"width,omitempty"`
	Height       *int   `json:"height,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// PendingFile is a validated upload that has not been persisted yet.
type PendingFile struct {
	Filename  string
	SizeBytes int64
	MimeType  string
	Width     *int
	Height    *int
	Data      io.Reader
}

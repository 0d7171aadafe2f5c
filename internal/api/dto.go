package api

import "github.com/smr-site/reviews-api/internal/domain"

// Request/response DTOs shared by the server handlers and the admin client.
// Field names mirror the wire format exactly; the admin SPA consumes the
// same JSON.

type StatusResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// SessionResponse answers the admin session check.
type SessionResponse struct {
	OK      bool `json:"ok"`
	IsAdmin bool `json:"is_admin"`
}

type CodesResponse struct {
	OK          bool              `json:"ok"`
	Counts      domain.CodeCounts `json:"counts"`
	UnusedCodes []domain.Code     `json:"unused_codes"`
	UsedCodes   []domain.UsedCode `json:"used_codes"`
}

type AddCodesResponse struct {
	OK        bool `json:"ok"`
	Submitted int  `json:"submitted"`
}

type DeleteCodeResponse struct {
	OK      bool `json:"ok"`
	Deleted int  `json:"deleted"`
}

type AdminReviewsResponse struct {
	OK      bool            `json:"ok"`
	Total   int             `json:"total"`
	Reviews []domain.Review `json:"reviews"`
}

// PublicReview is the anonymized shape served to the public site.
type PublicReview struct {
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at,omitempty"`
}

type PublicReviewsResponse struct {
	Reviews []PublicReview `json:"reviews"`
}

type GalleryResponse struct {
	OK     bool                  `json:"ok"`
	Images []domain.GalleryImage `json:"images"`
}

type GalleryUploadResponse struct {
	OK    bool                `json:"ok"`
	Image domain.GalleryImage `json:"image"`
}

// SubmitReviewRequest is the JSON variant of the public submission form.
type SubmitReviewRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Rating  *int   `json:"rating" validate:"required"`
	Message string `json:"message" validate:"required"`
	Code    string `json:"code"`
}

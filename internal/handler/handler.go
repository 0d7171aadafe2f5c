package handler

import (
	"context"
	"net/http"

	"github.com/smr-site/reviews-api/internal/service"
)

// SessionWriter is the part of the session manager the handlers drive.
type SessionWriter interface {
	IsAdmin(r *http.Request) bool
	SetAdmin(w http.ResponseWriter, r *http.Request) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config carries the handler-relevant slice of the public configuration.
type Config struct {
	MaxUploadSize         int64
	AllowedImageMimeTypes []string
}

type Handler struct {
	auth     service.AuthService
	codes    service.CodesService
	reviews  service.ReviewsService
	gallery  service.GalleryService
	sessions SessionWriter
	health   Pinger
	cfg      Config
}

func New(auth service.AuthService, codes service.CodesService, reviews service.ReviewsService,
	gallery service.GalleryService, sessions SessionWriter, health Pinger, cfg Config) *Handler {
	return &Handler{
		auth:     auth,
		codes:    codes,
		reviews:  reviews,
		gallery:  gallery,
		sessions: sessions,
		health:   health,
		cfg:      cfg,
	}
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smr-site/reviews-api/internal/api"
	"github.com/smr-site/reviews-api/internal/handler"
	"github.com/smr-site/reviews-api/internal/middleware"
	"github.com/smr-site/reviews-api/internal/middleware/metrics"
)

type Deps struct {
	Handler     *handler.Handler
	Auth        *middleware.Auth
	MediaRoot   string
	AdminOrigin string
	HTTPS       bool
}

// New wires all routes. Read-only admin endpoints sit behind AdminOnly,
// mutating ones behind AdminWrite which additionally demands the marker
// header.
func New(deps *Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeaders(deps.HTTPS))

	if deps.AdminOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{deps.AdminOrigin},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", api.MarkerHeaderName},
			AllowCredentials: true,
		}))
	}

	h := deps.Handler

	// Public surface
	r.Get("/health", h.Health)
	r.Post("/submit-review", h.SubmitReview)
	r.Get("/reviews", h.PublicReviews)
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(deps.MediaRoot))))

	r.Handle("/metrics", promhttp.Handler())

	// Admin surface
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/me", h.Me)
		r.Post("/login", h.Login)

		write := deps.Auth.AdminWrite()
		read := deps.Auth.AdminOnly()

		r.With(write).Post("/logout", h.Logout)

		r.With(read).Get("/codes", h.ListCodes)
		r.With(read).Get("/codes/unused.csv", h.UnusedCodesCSV)
		r.With(write).Post("/codes/add", h.AddCodes)
		r.With(write).Post("/codes/delete", h.DeleteCode)

		r.With(read).Get("/reviews", h.AdminReviews)
		r.With(write).Post("/reviews/delete", h.DeleteReview)

		r.With(read).Get("/gallery", h.ListGallery)
		r.With(write).Post("/gallery/upload", h.UploadGalleryImage)
		r.With(write).Post("/gallery/delete", h.DeleteGalleryImage)
	})

	return r
}

package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/smr-site/reviews-api/internal/api"
	"github.com/smr-site/reviews-api/internal/validation"
)

// ListGallery handles GET /api/admin/gallery.
func (h *Handler) ListGallery(w http.ResponseWriter, r *http.Request) {
	images, err := h.gallery.List()
	if err != nil {
		api.WriteServiceError(w, err)
		return
	}

	api.WriteJSON(w, api.GalleryResponse{OK: true, Images: images})
}

// UploadGalleryImage handles POST /api/admin/gallery/upload with multipart
// fields file, category and optional alt.
func (h *Handler) UploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	maxRequestSize := validation.CalculateMaxRequestSize(h.cfg.MaxUploadSize, 1<<20)
	if err := validation.ValidateAndParseMultipart(r, w, maxRequestSize); err != nil {
		api.WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		api.WriteError(w, http.StatusBadRequest, "missing_file")
		return
	}

	pending, err := validation.ValidateImage(files[0], h.cfg.AllowedImageMimeTypes)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidMimeType) {
			api.WriteError(w, http.StatusBadRequest, "invalid_file_type")
			return
		}
		api.WriteServiceError(w, err)
		return
	}
	if closer, ok := pending.Data.(io.Closer); ok {
		defer closer.Close()
	}

	img, err := h.gallery.Upload(pending, r.FormValue("category"), r.FormValue("alt"))
	if err != nil {
		api.WriteServiceError(w, err)
		return
	}

	api.WriteJSON(w, api.GalleryUploadResponse{OK: true, Image: *img})
}

// DeleteGalleryImage handles POST /api/admin/gallery/delete with form field id.
func (h *Handler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(formValue(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "bad_id")
		return
	}

	if err := h.gallery.Delete(id); err != nil {
		api.WriteServiceError(w, err)
		return
	}

	api.WriteJSON(w, api.StatusResponse{OK: true})
}

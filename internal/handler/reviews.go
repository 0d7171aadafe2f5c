package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/smr-site/reviews-api/internal/api"
	"github.com/smr-site/reviews-api/internal/domain"
)

// SubmitReview handles POST /submit-review, the public code-gated form.
// The body may be JSON or a form.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var sub domain.ReviewSubmission
	var rawRating string

	if isJSON(r) {
		var body struct {
			Name    string          `json:"name"`
			Email   string          `json:"email"`
			Rating  json.RawMessage `json:"rating"`
			Message string          `json:"message"`
			Code    string          `json:"code"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		sub.Name = body.Name
		sub.Email = body.Email
		sub.Message = body.Message
		sub.Code = body.Code
		// the rating may arrive as a number or a quoted string
		rawRating = string(body.Rating)
		var s string
		if json.Unmarshal(body.Rating, &s) == nil {
			rawRating = s
		}
	} else {
		sub.Name = formValue(r, "name")
		sub.Email = formValue(r, "email")
		sub.Message = formValue(r, "message")
		sub.Code = formValue(r, "code")
		rawRating = formValue(r, "rating")
	}

	if sub.Name == "" || sub.Message == "" || rawRating == "" {
		api.WriteError(w, http.StatusBadRequest, "name, rating, and message are required")
		return
	}

	rating, err := strconv.Atoi(rawRating)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "rating must be an integer")
		return
	}
	sub.Rating = rating

	if err := h.reviews.Submit(sub); err != nil {
		api.WriteServiceError(w, err)
		return
	}

	api.WriteJSON(w, api.StatusResponse{OK: true})
}

// PublicReviews handles GET /reviews.
func (h *Handler) PublicReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.Public()
	if err != nil {
		api.WriteServiceError(w, err)
		return
	}

	out := make([]api.PublicReview, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, api.PublicReview{
			Name:      rv.Name,
			Rating:    rv.Rating,
			Message:   rv.Message,
			CreatedAt: rv.CreatedAt,
		})
	}

	api.WriteJSON(w, api.PublicReviewsResponse{Reviews: out})
}

// AdminReviews handles GET /api/admin/reviews?limit=N.
func (h *Handler) AdminReviews(w http.ResponseWriter, r *http.Request) {
	reviews, total, err := h.reviews.AdminList(queryLimit(r, 0))
	if err != nil {
		api.WriteServiceError(w, err)
		return
	}

	api.WriteJSON(w, api.AdminReviewsResponse{OK: true, Total: total, Reviews: reviews})
}

// DeleteReview handles POST /api/admin/reviews/delete with form field id.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(formValue(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "bad_id")
		return
	}

	if err := h.reviews.Delete(id); err != nil {
		api.WriteServiceError(w, err)
		return
	}

	api.WriteJSON(w, api.StatusResponse{OK: true})
}

package handler

import (
	"net/http"

	"github.com/smr-site/reviews-api/internal/api"
)

// ListCodes handles GET /api/admin/codes?limit=N.
func (h *Handler) ListCodes(w http.ResponseWriter, r *http.Request) {
	summary, err := h.codes.Summary(queryLimit(r, 0))
	if err != nil {
		api.WriteServiceError(w, err)
		return
	}

	api.WriteJSON(w, api.CodesResponse{
		OK:          true,
		Counts:      summary.Counts,
		UnusedCodes: summary.Unused,
		UsedCodes:   summary.Used,
	})
}

// AddCodes handles POST /api/admin/codes/add with form field codes, a
// newline-separated blob.
func (h *Handler) AddCodes(w http.ResponseWriter, r *http.Request) {
	submitted, err := h.codes.Add(formValue(r, "codes"))
	if err != nil {
		api.WriteServiceError(w, err)
		return
	}

	api.WriteJSON(w, api.AddCodesResponse{OK: true, Submitted: submitted})
}

// DeleteCode handles POST /api/admin/codes/delete with form field code.
func (h *Handler) DeleteCode(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.codes.Delete(formValue(r, "code"))
	if err != nil {
		api.WriteServiceError(w, err)
		return
	}

	api.WriteJSON(w, api.DeleteCodeResponse{OK: true, Deleted: deleted})
}

// UnusedCodesCSV handles GET /api/admin/codes/unused.csv.
func (h *Handler) UnusedCodesCSV(w http.ResponseWriter, r *http.Request) {
	csv, err := h.codes.UnusedCSV()
	if err != nil {
		api.WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=unused_review_codes.csv")
	w.Write(csv)
}

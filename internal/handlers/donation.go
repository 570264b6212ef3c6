package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dogoods/donation-scheduler/internal/models"
	"github.com/dogoods/donation-scheduler/internal/repo"
)

// DonationHandler exposes the append-only donation ledger, most recent first.
type DonationHandler struct {
	Repo *repo.DonationRepo
}

// ListDonations returns paginated ledger entries (query: limit, offset).
func (h *DonationHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	list, err := h.Repo.ListRecent(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	total, err := h.Repo.Count(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if list == nil {
		list = []models.Donation{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": list,
		"total": total,
	})
}

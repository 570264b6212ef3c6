package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dogoods/donation-scheduler/internal/models"
	"github.com/dogoods/donation-scheduler/internal/repo"
)

// ScheduleHandler exposes read-only visibility into active schedules.
// Creating and editing schedules happens in the user-facing app, not here.
type ScheduleHandler struct {
	Repo *repo.ScheduleRepo
}

// ListSchedules returns paginated active schedules (query: limit, offset).
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	total, err := h.Repo.CountActive(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if list == nil {
		list = []models.Schedule{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": list,
		"total": total,
	})
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dogoods/donation-scheduler/internal/advancer"
)

// Runner executes one schedule processing pass.
type Runner interface {
	Run(ctx context.Context) (advancer.Summary, error)
}

// ProcessHandler exposes the processing trigger. Any POST runs one pass.
type ProcessHandler struct {
	Runner Runner
	// Timeout is the per-run deadline. Zero means the request context alone
	// bounds the run.
	Timeout time.Duration
}

// ProcessResults is the per-run tally in the trigger response.
type ProcessResults struct {
	RemindersCreated   int      `json:"remindersCreated"`
	DonationsProcessed int      `json:"donationsProcessed"`
	Errors             []string `json:"errors"`
}

// ProcessResponse is the trigger response body. Success reflects only the
// listing phase; callers must inspect results.errors for partial failure.
type ProcessResponse struct {
	Success   bool           `json:"success"`
	Processed int            `json:"processed"`
	Results   ProcessResults `json:"results"`
}

// ProcessSchedules runs one pass and reports the summary. Per-schedule
// failures land in results.errors and never flip the 200; only a failure to
// list schedules at all produces a 500.
func (h *ProcessHandler) ProcessSchedules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	sum, err := h.Runner.Run(ctx)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	errs := make([]string, 0, len(sum.Errors))
	for _, e := range sum.Errors {
		errs = append(errs, fmt.Sprintf("Schedule %s: %s", e.ScheduleID, e.Message))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProcessResponse{
		Success:   true,
		Processed: sum.SchedulesScanned,
		Results: ProcessResults{
			RemindersCreated:   sum.RemindersCreated,
			DonationsProcessed: sum.SchedulesAdvanced,
			Errors:             errs,
		},
	})
}

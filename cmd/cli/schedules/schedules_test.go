package schedules

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dogoods/donation-scheduler/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func testSchedules() []models.Schedule {
	return []models.Schedule{
		{
			ID:               uuid.New(),
			UserID:           uuid.New(),
			Amount:           decimal.NewFromInt(50),
			Frequency:        models.FrequencyWeekly,
			NextDonationDate: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			ReminderEnabled:  true,
			Status:           models.ScheduleStatusActive,
			DonationCount:    4,
		},
	}
}

func TestListSchedules_TableOutput(t *testing.T) {
	items := testSchedules()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedules" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if key := r.Header.Get("api-key"); key != "test-key" {
			t.Fatalf("unexpected api-key header: %q", key)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": items, "total": 1})
	}))
	defer srv.Close()

	_ = os.Setenv("DONATION_API_URL", srv.URL)
	_ = os.Setenv("DONATION_SERVICE_KEY", "test-key")
	defer os.Unsetenv("DONATION_API_URL")
	defer os.Unsetenv("DONATION_SERVICE_KEY")

	cmd := listSchedulesCmd()

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, "50.00") || !strings.Contains(out, "weekly") {
		t.Fatalf("expected schedule fields in output, got: %s", out)
	}
	if !strings.Contains(out, "2026-09-08") {
		t.Fatalf("expected next date in output, got: %s", out)
	}
	if !strings.Contains(out, "1 active schedule(s)") {
		t.Fatalf("expected total line in output, got: %s", out)
	}
}

func TestListSchedules_JSONOutput(t *testing.T) {
	items := testSchedules()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": items, "total": 1})
	}))
	defer srv.Close()

	_ = os.Setenv("DONATION_API_URL", srv.URL)
	defer os.Unsetenv("DONATION_API_URL")

	cmd := listSchedulesCmd()
	_ = cmd.Flags().Set("json", "true")

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, `"items"`) || !strings.Contains(out, items[0].ID.String()) {
		t.Fatalf("expected JSON output with schedule id, got: %s", out)
	}
}

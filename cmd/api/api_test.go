package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dogoods/donation-scheduler/internal/config"
	"github.com/google/uuid"
)

var scheduleRows = []string{
	"id", "user_id", "amount", "frequency", "next_donation_date",
	"reminder_enabled", "reminder_days_before", "status", "total_donated",
	"donation_count", "last_processed_at", "created_at",
}

func testConfig() config.Config {
	return config.Config{
		ServiceSecret:     "integration-secret",
		WorkerPoolSize:    1,
		RunTimeoutSeconds: 30,
	}
}

// TestAPI_TriggerProcessesDueSchedule is an integration test: it builds the
// full router with a sqlmock-backed DB and POSTs the trigger with the service
// key. The mocked store holds one overdue weekly schedule, so the run must
// advance it and append a ledger row.
func TestAPI_TriggerProcessesDueSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	schedID := uuid.New()
	owner := uuid.New()
	due := time.Now().UTC().AddDate(0, 0, -1)

	mock.ExpectQuery(`SELECT id, user_id, amount, frequency, next_donation_date`).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows(scheduleRows).
			AddRow(schedID.String(), owner.String(), "50.00", "weekly", due, false, 0, "active", "0", 0, nil, time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE donation_schedules`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO donation_history`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	req, _ := http.NewRequest("POST", srv.URL+"/jobs/process-donation-schedules", nil)
	req.Header.Set("api-key", "integration-secret")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("trigger request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("trigger status: got %d, want 200", resp.StatusCode)
	}
	var out struct {
		Success   bool `json:"success"`
		Processed int  `json:"processed"`
		Results   struct {
			RemindersCreated   int      `json:"remindersCreated"`
			DonationsProcessed int      `json:"donationsProcessed"`
			Errors             []string `json:"errors"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Success || out.Processed != 1 || out.Results.DonationsProcessed != 1 {
		t.Errorf("unexpected response: %+v", out)
	}
	if len(out.Results.Errors) != 0 {
		t.Errorf("unexpected errors: %v", out.Results.Errors)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPI_TriggerRequiresServiceKey(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/jobs/process-donation-schedules", "application/json", nil)
	if err != nil {
		t.Fatalf("trigger request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status without credential: got %d, want 401", resp.StatusCode)
	}
}

func TestAPI_TriggerListFailureIs500(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, amount, frequency, next_donation_date`).
		WillReturnError(sqlmock.ErrCancelled)

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	req, _ := http.NewRequest("POST", srv.URL+"/run", nil)
	req.Header.Set("api-key", "integration-secret")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("trigger request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status on listing failure: got %d, want 500", resp.StatusCode)
	}
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Success || out.Error == "" {
		t.Errorf("unexpected failure body: %+v", out)
	}
}

func TestAPI_PreflightAnyPath(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/any/old/path", nil)
	req.Header.Set("Origin", "https://app.dogoods.org")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("preflight status: got %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin: got %q, want *", got)
	}
}

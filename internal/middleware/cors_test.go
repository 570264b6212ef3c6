package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORS_PreflightShortCircuits(t *testing.T) {
	reached := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	req.Header.Set("Origin", "https://app.dogoods.org")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if reached {
		t.Error("preflight must not reach the handler")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin: got %q, want *", got)
	}
	for _, header := range []string{"Content-Type", "Authorization", "x-client-info", "api-key"} {
		if !strings.Contains(rr.Header().Get("Access-Control-Allow-Headers"), header) {
			t.Errorf("allow-headers missing %q: %q", header, rr.Header().Get("Access-Control-Allow-Headers"))
		}
	}
	if body := rr.Body.String(); body != "ok" {
		t.Errorf("preflight body: got %q, want ok", body)
	}
}

func TestCORS_HeadersOnActualRequest(t *testing.T) {
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin: got %q, want *", got)
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Errorf("allow-methods: %q", rr.Header().Get("Access-Control-Allow-Methods"))
	}
}

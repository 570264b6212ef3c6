package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-service-secret"

func serviceKeyHandler(t *testing.T, secret string) (http.Handler, *bool) {
	t.Helper()
	reached := false
	h := ServiceKey(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	return h, &reached
}

func TestServiceKey_APIKeyHeader(t *testing.T) {
	h, reached := serviceKeyHandler(t, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("api-key", testSecret)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !*reached || rr.Code != http.StatusOK {
		t.Errorf("valid api-key rejected: reached=%v status=%d", *reached, rr.Code)
	}
}

func TestServiceKey_WrongAPIKey(t *testing.T) {
	h, reached := serviceKeyHandler(t, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("api-key", "wrong")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if *reached || rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong api-key accepted: reached=%v status=%d", *reached, rr.Code)
	}
}

func TestServiceKey_BearerServiceRole(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "service_role"})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	h, reached := serviceKeyHandler(t, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !*reached || rr.Code != http.StatusOK {
		t.Errorf("valid service token rejected: reached=%v status=%d", *reached, rr.Code)
	}
}

func TestServiceKey_BearerWrongRole(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "authenticated"})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	h, reached := serviceKeyHandler(t, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if *reached || rr.Code != http.StatusUnauthorized {
		t.Errorf("non-service role accepted: reached=%v status=%d", *reached, rr.Code)
	}
}

func TestServiceKey_BearerWrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "service_role"})
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	h, reached := serviceKeyHandler(t, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if *reached || rr.Code != http.StatusUnauthorized {
		t.Errorf("token with wrong secret accepted: reached=%v status=%d", *reached, rr.Code)
	}
}

func TestServiceKey_MissingCredential(t *testing.T) {
	h, reached := serviceKeyHandler(t, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if *reached || rr.Code != http.StatusUnauthorized {
		t.Errorf("missing credential accepted: reached=%v status=%d", *reached, rr.Code)
	}
}

func TestServiceKey_EmptySecretDisablesCheck(t *testing.T) {
	h, reached := serviceKeyHandler(t, "")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !*reached || rr.Code != http.StatusOK {
		t.Errorf("empty secret must disable auth: reached=%v status=%d", *reached, rr.Code)
	}
}

package middleware

import "net/http"

// The trigger is invoked cross-origin by hosted infrastructure, so the CORS
// policy is deliberately permissive: any origin, a fixed method and header
// allowlist matching what the invoking clients send.
const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, x-client-info, api-key"
)

// CORS sets permissive CORS headers on every response and answers OPTIONS
// preflight directly with 200 "ok" so a preflight never reaches a handler.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", corsAllowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
		w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

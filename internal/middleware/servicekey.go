package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceKey guards the processing trigger with the privileged service
// credential. The invoker may present the secret verbatim in the api-key
// header, or a bearer token signed with the secret whose role claim is
// service_role (the form hosted platforms hand to scheduled invokers).
// An empty secret disables the check for local development.
func ServiceKey(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := r.Header.Get("api-key"); key != "" {
				if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
				unauthorized(w, "invalid api key")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing service credential")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				unauthorized(w, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w, "invalid token claims")
				return
			}
			if role, _ := claims["role"].(string); role != "service_role" {
				unauthorized(w, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

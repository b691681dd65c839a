package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminKeyHeader carries the static admin key on /manage requests.
const AdminKeyHeader = "X-API-Key"

// AdminAuth guards management endpoints with a single static key. A missing
// or mismatched key is rejected with 403 before any handler runs. The
// comparison is constant-time.
func AdminAuth(adminKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(AdminKeyHeader)

			if subtle.ConstantTimeCompare([]byte(supplied), []byte(adminKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid API key"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

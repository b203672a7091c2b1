package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// APIKey wraps next with API key authentication.
//
// If mode != "apikey" or key == "", every request passes through. Otherwise
// the value of header must equal key; a missing or wrong key gets a 401 JSON
// error and next is not called.
func APIKey(mode, header, key string, next http.Handler) http.Handler {
	if mode != "apikey" || key == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(header)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

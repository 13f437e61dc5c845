// internal/httpmw/ratelimit.go
package httpmw

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit applies a single server-wide limiter to every request.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

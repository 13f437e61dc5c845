package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxBrokerID ctxKey = "brokerID"
	CtxIsAdmin  ctxKey = "isAdmin"
)

// Middleware validates the Bearer token and stores the broker identity on the
// request context. Handlers read it once via BrokerIDFromContext and pass it
// down as a plain value.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxBrokerID, claims.BrokerID)
		ctx = context.WithValue(ctx, CtxIsAdmin, claims.IsAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin guards admin-only routes; must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Context().Value(CtxIsAdmin)
		if ok, _ := v.(bool); !ok {
			http.Error(w, "forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// BrokerIDFromContext returns the authenticated broker id, if any.
func BrokerIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxBrokerID).(uint)
	return id, ok
}

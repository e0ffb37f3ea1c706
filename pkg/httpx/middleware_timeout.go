package httpx

import (
	"context"
	"net/http"
	"time"
)

// WithTimeout attaches a deadline to every request context so a hung store
// call cannot hang the request indefinitely. Handlers observe the deadline
// through the store's context-aware query methods.
func WithTimeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

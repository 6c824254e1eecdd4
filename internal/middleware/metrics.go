package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/habitloop/internal/metrics"
)

// Metrics records the duration of every request in the
// HTTP request histogram. Requests are labeled by chi route pattern
// ("/api/habits/{id}"), not raw path, to keep label cardinality bounded.
// Unmatched requests share the "unmatched" label.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrap(w)

		next.ServeHTTP(wrapped, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.RecordHTTPRequestDuration(r.Method, route, strconv.Itoa(wrapped.statusCode), time.Since(start))
	})
}

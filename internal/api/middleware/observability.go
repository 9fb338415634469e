package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/observability"
)

// ObservabilityMiddleware adds OpenTelemetry tracing and metrics to HTTP requests
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Static paths are unbounded, so everything off the API collapses into one route label
			route := routeLabel(r)

			ctx, span := observability.StartSpan(r.Context(), "HTTP "+r.Method+" "+route)
			defer span.End()

			observability.SetSpanAttributes(span,
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.user_agent", r.UserAgent()),
			)

			rw := newStatusWriter(w)
			start := time.Now()

			next.ServeHTTP(rw, r.WithContext(ctx))

			observability.RecordRequestMetric(ctx, metrics, r.Method, route, rw.statusCode, time.Since(start))
			observability.SetSpanAttributes(span,
				attribute.Int("http.status_code", rw.statusCode),
				attribute.String("cache.status", rw.Header().Get("X-Cache")),
			)
		})
	}
}

func routeLabel(r *http.Request) string {
	switch r.URL.Path {
	case "/api/use-cases", "/api/portfolio", "/health":
		return r.URL.Path
	}
	return "static"
}

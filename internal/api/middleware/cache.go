package middleware

import (
	"net/http"
	"strings"
)

// CacheRule assigns a default Cache-Control directive to a path prefix
type CacheRule struct {
	Prefix    string
	Directive string
}

// CacheControlMiddleware sets a default Cache-Control header per route before the handler runs.
// Handlers may still override it; the first matching prefix wins.
type CacheControlMiddleware struct {
	rules    []CacheRule
	fallback string
}

// NewCacheControlMiddleware creates the middleware with the board's route defaults.
// proxyDirective is the shared-cache policy advertised by the proxy endpoint.
func NewCacheControlMiddleware(proxyDirective string) *CacheControlMiddleware {
	return &CacheControlMiddleware{
		rules: []CacheRule{
			{Prefix: "/api/use-cases", Directive: proxyDirective},
			{Prefix: "/api/", Directive: "private, no-cache, must-revalidate"},
			{Prefix: "/health", Directive: "no-store"},
		},
		fallback: "public, max-age=300",
	}
}

// Middleware returns the handler wrapper
func (m *CacheControlMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			w.Header().Set("Cache-Control", m.directiveFor(r.URL.Path))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *CacheControlMiddleware) directiveFor(path string) string {
	for _, rule := range m.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Directive
		}
	}
	return m.fallback
}

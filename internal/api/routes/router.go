package routes

import (
	"net/http"

	"github.com/zatekoja/aiportfolioboard/internal/api/handlers"
	"github.com/zatekoja/aiportfolioboard/internal/api/middleware"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	useCasesHandler  *handlers.UseCasesHandler
	portfolioHandler *handlers.PortfolioHandler

	staticDir      string
	allowedOrigins []string
	cacheControl   *middleware.CacheControlMiddleware
	metrics        *observability.Metrics
}

// RouterConfig carries the non-handler settings of the HTTP surface
type RouterConfig struct {
	StaticDir      string
	AllowedOrigins []string
	ProxyDirective string
}

// NewRouter creates a new router
func NewRouter(
	useCasesHandler *handlers.UseCasesHandler,
	portfolioHandler *handlers.PortfolioHandler,
	cfg RouterConfig,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		useCasesHandler:  useCasesHandler,
		portfolioHandler: portfolioHandler,
		staticDir:        cfg.StaticDir,
		allowedOrigins:   cfg.AllowedOrigins,
		cacheControl:     middleware.NewCacheControlMiddleware(cfg.ProxyDirective),
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.mux.HandleFunc("GET /api/use-cases", r.useCasesHandler.GetUseCases)
	r.mux.HandleFunc("GET /api/portfolio", r.portfolioHandler.GetPortfolio)

	// Static dashboard. Independent of the proxy, so a missing token never affects it.
	if r.staticDir != "" {
		r.mux.Handle("GET /", http.FileServer(http.Dir(r.staticDir)))
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = r.cacheControl.Middleware(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	// CORS wraps everything so preflights never reach the handlers
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/aiportfolioboard/internal/api/handlers"
	"github.com/zatekoja/aiportfolioboard/internal/api/routes"
	"github.com/zatekoja/aiportfolioboard/internal/bootstrap"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/observability"
	"github.com/zatekoja/aiportfolioboard/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env, cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	live, err := bootstrap.NewLive(ctx, cfg, metrics)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.App.SheetConfigPath).Msg("failed to initialize live data source")
	}
	defer live.Close()

	portfolioService, err := bootstrap.NewPortfolioService(cfg, cfg.App.DataSource, live)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize portfolio service")
	}

	router := routes.NewRouter(
		handlers.NewUseCasesHandler(live.Proxy, cfg.Cache.CacheControl()),
		handlers.NewPortfolioHandler(portfolioService),
		routes.RouterConfig{
			StaticDir:      cfg.Server.StaticDir,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			ProxyDirective: cfg.Cache.CacheControl(),
		},
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Smartsheet.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", serverAddr).
			Str("data_source", string(cfg.App.DataSource)).
			Str("cache_backend", cfg.Cache.Backend).
			Bool("static", cfg.Server.StaticDir != "").
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}

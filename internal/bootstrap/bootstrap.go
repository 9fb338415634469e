// Package bootstrap assembles the pipeline shared by the HTTP server and the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/aiportfolioboard/internal/adapters/cache"
	"github.com/zatekoja/aiportfolioboard/internal/adapters/sheets"
	"github.com/zatekoja/aiportfolioboard/internal/application/services"
	"github.com/zatekoja/aiportfolioboard/internal/domain/providers"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/clients/redis"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/clients/smartsheet"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/observability"
	"github.com/zatekoja/aiportfolioboard/pkg/config"
	"github.com/zatekoja/aiportfolioboard/pkg/retry"
	"github.com/zatekoja/aiportfolioboard/pkg/secrets"
)

// tokenKey is the Vault field holding the Smartsheet API token
const tokenKey = "SMARTSHEET_API_TOKEN"

// Live holds the components behind the live data source
type Live struct {
	Proxy  *services.SheetProxyService
	Sheet  *config.SheetConfig
	closer func()
}

// Close releases the cache connection, if any
func (l *Live) Close() {
	if l.closer != nil {
		l.closer()
	}
}

// NewLive builds the freshness-cached Smartsheet proxy. An invalid sheet configuration is an error;
// a missing API token is not, the proxy then answers every request with UNAVAILABLE.
func NewLive(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) (*Live, error) {
	sheetCfg, err := config.LoadSheetConfig(cfg.App.SheetConfigPath)
	if err != nil {
		return nil, err
	}

	token, err := secrets.ResolveToken(ctx, cfg.Smartsheet.APIToken, secrets.LoadVaultConfigFromEnv(), tokenKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read API token from Vault")
	}
	if token == "" {
		log.Warn().Msg("SMARTSHEET_API_TOKEN is not configured; live data is unavailable")
	}

	payloadCache, closer, err := newPayloadCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := smartsheet.NewClient(cfg.Smartsheet.BaseURL, token, cfg.Smartsheet.Timeout)
	source := sheets.NewSmartsheetAdapter(client, sheetCfg, retry.DefaultConfig(cfg.Smartsheet.MaxAttempts), metrics)
	proxy := services.NewSheetProxyService(source, payloadCache, providers.SystemClock{}, cfg.Cache.FreshnessWindow(), metrics)

	return &Live{Proxy: proxy, Sheet: sheetCfg, closer: closer}, nil
}

// NewPortfolioService builds the pipeline for the given mode. live may be nil in local mode.
func NewPortfolioService(cfg *config.Config, mode config.DataSource, live *Live) (*services.PortfolioService, error) {
	aggregator := services.NewPortfolioAggregator(services.AggregatorConfig{})

	switch mode {
	case config.DataSourceLocal:
		return services.NewLocalPortfolioService(sheets.NewLocalFileAdapter(cfg.App.LocalDataPath), aggregator), nil
	case config.DataSourceLive:
		if live == nil {
			return nil, fmt.Errorf("live data source is not initialized")
		}
		return services.NewLivePortfolioService(live.Proxy, live.Sheet.ColumnMap, aggregator), nil
	}
	return nil, fmt.Errorf("invalid data source %q (must be local or live)", mode)
}

func newPayloadCache(ctx context.Context, cfg *config.Config) (providers.PayloadCache, func(), error) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemoryAdapter(), nil, nil
	}

	client, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("using Redis payload cache")
	// No retention bound: an expired payload must stay available as the upstream-failure fallback.
	return cache.NewRedisAdapter(client, cfg.Redis.Key, 0), func() { client.Close() }, nil
}

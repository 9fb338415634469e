package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
	"github.com/zatekoja/aiportfolioboard/internal/domain/providers"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/aiportfolioboard/pkg/errors"
)

// CacheStatus says how a proxy response was produced
type CacheStatus string

const (
	CacheHit   CacheStatus = "HIT"
	CacheMiss  CacheStatus = "MISS"
	CacheStale CacheStatus = "STALE"
)

// DefaultFreshnessWindow is how long a fetched payload is served without contacting the upstream
const DefaultFreshnessWindow = 60 * time.Second

const refreshKey = "sheet"

// ProxyResult is an encoded sheet payload ready to be written to the client
type ProxyResult struct {
	Body      []byte
	FetchedAt time.Time
	Status    CacheStatus
}

// SheetProxyService serves the live sheet through a single-entry freshness cache
type SheetProxyService struct {
	source    providers.SheetSource
	cache     providers.PayloadCache
	clock     providers.Clock
	freshness time.Duration
	metrics   *observability.Metrics
	flight    singleflight.Group
}

// NewSheetProxyService creates a new proxy service. A non-positive freshness uses DefaultFreshnessWindow.
func NewSheetProxyService(
	source providers.SheetSource,
	cache providers.PayloadCache,
	clock providers.Clock,
	freshness time.Duration,
	metrics *observability.Metrics,
) *SheetProxyService {
	if clock == nil {
		clock = providers.SystemClock{}
	}
	if freshness <= 0 {
		freshness = DefaultFreshnessWindow
	}
	return &SheetProxyService{
		source:    source,
		cache:     cache,
		clock:     clock,
		freshness: freshness,
		metrics:   metrics,
	}
}

// GetPayload returns the cached payload while it is fresh, otherwise refreshes it.
// When the refresh fails an expired payload is served as STALE; without one the error is returned.
func (s *SheetProxyService) GetPayload(ctx context.Context) (*ProxyResult, error) {
	ctx, span := observability.StartSpan(ctx, "SheetProxyService.GetPayload")
	defer span.End()

	cached := s.readCache(ctx)
	if s.isFresh(cached) {
		observability.RecordCacheHit(ctx, s.metrics)
		return &ProxyResult{Body: cached.Body, FetchedAt: cached.FetchedAt, Status: CacheHit}, nil
	}

	// The shared refresh outlives any single caller's cancellation.
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := s.flight.Do(refreshKey, func() (interface{}, error) {
		return s.refresh(flightCtx)
	})
	if err != nil {
		observability.RecordError(span, err)
		if cached != nil {
			observability.RecordCacheStale(ctx, s.metrics)
			log.Warn().Err(err).Time("fetched_at", cached.FetchedAt).Msg("upstream refresh failed, serving stale payload")
			return &ProxyResult{Body: cached.Body, FetchedAt: cached.FetchedAt, Status: CacheStale}, nil
		}
		return nil, err
	}

	entry := v.(*entities.CachedPayload)
	if shared {
		log.Debug().Msg("joined in-flight sheet refresh")
	}
	observability.RecordCacheMiss(ctx, s.metrics)
	return &ProxyResult{Body: entry.Body, FetchedAt: entry.FetchedAt, Status: CacheMiss}, nil
}

// refresh runs inside the singleflight group, so at most one upstream call is in flight
func (s *SheetProxyService) refresh(ctx context.Context) (*entities.CachedPayload, error) {
	// Another flight may have stored a fresh entry after our caller read the cache.
	if cached := s.readCache(ctx); s.isFresh(cached) {
		return cached, nil
	}

	payload, err := s.source.FetchSheet(ctx)
	if err != nil {
		return nil, err
	}

	payload.FetchedAt = s.clock.Now()
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode sheet payload", err)
	}

	entry := &entities.CachedPayload{Body: body, FetchedAt: payload.FetchedAt}
	if err := s.cache.Put(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to store sheet payload")
	}
	return entry, nil
}

func (s *SheetProxyService) readCache(ctx context.Context) *entities.CachedPayload {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read sheet payload cache")
		return nil
	}
	return cached
}

func (s *SheetProxyService) isFresh(cached *entities.CachedPayload) bool {
	return cached != nil && s.clock.Now().Sub(cached.FetchedAt) < s.freshness
}

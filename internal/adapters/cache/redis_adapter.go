package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
	"github.com/zatekoja/aiportfolioboard/internal/domain/providers"
	redisclient "github.com/zatekoja/aiportfolioboard/internal/infrastructure/clients/redis"
)

// RedisAdapter implements PayloadCache on a single Redis key so replicas share one entry
type RedisAdapter struct {
	client    *redis.Client
	key       string
	retention time.Duration
}

// NewRedisAdapter creates a Redis payload cache.
// Retention bounds how long an expired payload stays available as a fallback; zero keeps it forever.
func NewRedisAdapter(client *redisclient.Client, key string, retention time.Duration) providers.PayloadCache {
	return &RedisAdapter{
		client:    client.Client(),
		key:       key,
		retention: retention,
	}
}

// Get retrieves the payload, returning nil when the key does not exist
func (a *RedisAdapter) Get(ctx context.Context) (*entities.CachedPayload, error) {
	data, err := a.client.Get(ctx, a.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}

	var payload entities.CachedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode cached payload: %w", err)
	}
	return &payload, nil
}

// Put stores the payload, replacing any previous one
func (a *RedisAdapter) Put(ctx context.Context, payload *entities.CachedPayload) error {
	if payload == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	if err := a.client.Set(ctx, a.key, data, a.retention).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}
	return nil
}

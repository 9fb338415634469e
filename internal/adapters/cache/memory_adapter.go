package cache

import (
	"context"
	"sync"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
	"github.com/zatekoja/aiportfolioboard/internal/domain/providers"
)

// MemoryAdapter implements PayloadCache in process memory
type MemoryAdapter struct {
	mu      sync.RWMutex
	payload *entities.CachedPayload
}

// NewMemoryAdapter creates an empty in-process payload cache
func NewMemoryAdapter() providers.PayloadCache {
	return &MemoryAdapter{}
}

// Get returns a copy of the stored payload, or nil
func (a *MemoryAdapter) Get(ctx context.Context) (*entities.CachedPayload, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.payload == nil {
		return nil, nil
	}
	return clonePayload(a.payload), nil
}

// Put replaces the stored payload
func (a *MemoryAdapter) Put(ctx context.Context, payload *entities.CachedPayload) error {
	if payload == nil {
		return nil
	}
	stored := clonePayload(payload)
	a.mu.Lock()
	a.payload = stored
	a.mu.Unlock()
	return nil
}

// copies keep callers from mutating the shared bytes
func clonePayload(p *entities.CachedPayload) *entities.CachedPayload {
	body := make([]byte, len(p.Body))
	copy(body, p.Body)
	return &entities.CachedPayload{Body: body, FetchedAt: p.FetchedAt}
}

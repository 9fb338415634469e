package providers

import (
	"context"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
)

// PayloadCache defines the interface for the single-entry upstream payload cache.
// Implementations must be safe for concurrent use; Put replaces the entry (last writer wins).
type PayloadCache interface {
	// Get returns the stored payload, or nil when nothing has been stored yet
	Get(ctx context.Context) (*entities.CachedPayload, error)

	// Put replaces the stored payload
	Put(ctx context.Context, payload *entities.CachedPayload) error
}

package usecase

import (
	"context"
	"time"
)

// ResultCache caches assembled session-result views. Implementations must
// degrade to no-ops when the backing store is unavailable.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func sessionResultCacheKey(sessionID string) string {
	return "screening:result:" + sessionID
}

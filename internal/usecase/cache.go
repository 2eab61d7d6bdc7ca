package usecase

import (
	"context"
	"time"
)

// JobCache is the read-side cache for the job index scan. Implementations
// must degrade to a no-op when the backing store is unavailable; a cache
// miss is never an error the caller sees.
type JobCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const jobsListCacheKey = "jobs:all"

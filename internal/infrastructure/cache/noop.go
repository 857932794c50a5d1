package cache

import (
	"context"
	"time"

	interfaces "filmorate/internal/interfaces/infrastructure"
)

// NoopCache is used when caching is disabled. Every read is a miss.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) GetPopular(context.Context, int) ([]int64, error) {
	return nil, interfaces.ErrCacheMiss
}

func (NoopCache) SetPopular(context.Context, int, []int64, time.Duration) error { return nil }

func (NoopCache) InvalidatePopular(context.Context) error { return nil }

func (NoopCache) Clear(context.Context, string) error { return nil }

func (NoopCache) Health(context.Context) error { return nil }

func (NoopCache) Close() error { return nil }

var _ interfaces.CacheService = NoopCache{}

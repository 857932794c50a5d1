package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// PopularFilmsCache stores ranked film id lists keyed by requested size.
type PopularFilmsCache interface {
	GetPopular(ctx context.Context, count int) ([]int64, error)
	SetPopular(ctx context.Context, count int, filmIDs []int64, ttl time.Duration) error
	InvalidatePopular(ctx context.Context) error
}

// CacheService is the full cache backend used by the application.
type CacheService interface {
	PopularFilmsCache

	// Clear removes every key matching pattern
	Clear(ctx context.Context, pattern string) error

	// Health and connection management
	Health(ctx context.Context) error
	Close() error
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"filmorate/internal/config"
	interfaces "filmorate/internal/interfaces/infrastructure"

	"github.com/go-redis/redis/v8"
)

const popularKeyPrefix = "films:popular:"

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{
		client: rdb,
	}
}

func NewRedisCacheWithConfig(cfg *config.CacheConfig) *RedisCache {
	return NewRedisCache(cfg.Addr(), cfg.Password, cfg.DB)
}

func (r *RedisCache) GetClient() *redis.Client {
	return r.client
}

func popularKey(count int) string {
	return popularKeyPrefix + strconv.Itoa(count)
}

func (r *RedisCache) GetPopular(ctx context.Context, count int) ([]int64, error) {
	val, err := r.client.Get(ctx, popularKey(count)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, interfaces.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get popular films from cache: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		return nil, fmt.Errorf("invalid popular films value in cache: %w", err)
	}

	return ids, nil
}

func (r *RedisCache) SetPopular(ctx context.Context, count int, filmIDs []int64, ttl time.Duration) error {
	jsonData, err := json.Marshal(filmIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal popular films: %w", err)
	}

	if err := r.client.Set(ctx, popularKey(count), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set popular films in cache: %w", err)
	}

	return nil
}

func (r *RedisCache) InvalidatePopular(ctx context.Context) error {
	return r.Clear(ctx, popularKeyPrefix+"*")
}

func (r *RedisCache) Clear(ctx context.Context, pattern string) error {
	var keys []string
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys for pattern %s: %w", pattern, err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete keys: %w", err)
		}
	}

	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ interfaces.CacheService = (*RedisCache)(nil)

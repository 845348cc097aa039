package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/strscout/backend/src/logger"
	"github.com/strscout/backend/src/models"
)

const (
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// Cache keys
const ckCalculationResult = "calc_result_%d"

func calculationCacheKey(propertyID int64) string {
	return fmt.Sprintf(ckCalculationResult, propertyID)
}

type memoryResultCache struct {
	c *cache.Cache
}

// NewMemoryResultCache keeps results in process memory.
func NewMemoryResultCache(expiration, cleanupInterval time.Duration) ResultCache {
	return &memoryResultCache{c: cache.New(expiration, cleanupInterval)}
}

func (m *memoryResultCache) Get(_ context.Context, key string) (*models.CalculationResult, bool) {
	cached, found := m.c.Get(key)
	if !found {
		return nil, false
	}
	result := cached.(models.CalculationResult)
	return &result, true
}

func (m *memoryResultCache) Set(_ context.Context, key string, result *models.CalculationResult) {
	m.c.Set(key, *result, cache.DefaultExpiration)
}

func (m *memoryResultCache) Delete(_ context.Context, key string) {
	m.c.Delete(key)
}

// RedisResultCache shares results between instances through Redis.
type RedisResultCache struct {
	client     *redis.Client
	expiration time.Duration
}

func NewRedisResultCache(addr, password string, db int, expiration time.Duration) *RedisResultCache {
	return &RedisResultCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		expiration: expiration,
	}
}

func (r *RedisResultCache) Get(ctx context.Context, key string) (*models.CalculationResult, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Warn("Result cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var result models.CalculationResult
	if err := json.Unmarshal(val, &result); err != nil {
		logger.FromContext(ctx).Warn("Discarding undecodable cached result", "key", key, "error", err)
		return nil, false
	}
	return &result, true
}

func (r *RedisResultCache) Set(ctx context.Context, key string, result *models.CalculationResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		logger.FromContext(ctx).Warn("Result not cached", "key", key, "error", err)
		return
	}
	if err := r.client.Set(ctx, key, payload, r.expiration).Err(); err != nil {
		logger.FromContext(ctx).Warn("Result cache write failed", "key", key, "error", err)
	}
}

func (r *RedisResultCache) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		logger.FromContext(ctx).Warn("Result cache delete failed", "key", key, "error", err)
	}
}

// Ping checks the Redis connection at startup.
func (r *RedisResultCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisResultCache) Close() error {
	return r.client.Close()
}

package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tasktime/internal/core/ports"
)

// ClientIDCache wraps a task repository and keeps client public id lookups in Redis.
// Only successful lookups are cached.
type ClientIDCache struct {
	ports.TaskRepository
	redis *redis.Client
	ttl   time.Duration
}

func NewClientIDCache(base ports.TaskRepository, client *redis.Client, ttl time.Duration) *ClientIDCache {
	if base == nil {
		panic("cache.NewClientIDCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &ClientIDCache{TaskRepository: base, redis: client, ttl: ttl}
}

func (c *ClientIDCache) ResolveClientID(ctx context.Context, accountID uint64, clientPublicID string) (uint64, error) {
	if id, ok := c.load(ctx, accountID, clientPublicID); ok {
		return id, nil
	}

	id, err := c.TaskRepository.ResolveClientID(ctx, accountID, clientPublicID)
	if err != nil {
		return 0, err
	}

	c.store(ctx, accountID, clientPublicID, id)
	return id, nil
}

func (c *ClientIDCache) load(ctx context.Context, accountID uint64, clientPublicID string) (uint64, bool) {
	if c.redis == nil {
		return 0, false
	}
	key := clientCacheKey(accountID, clientPublicID)
	value, err := c.redis.Get(ctx, key).Uint64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Fall back to the database on redis or decoding errors.
			zap.L().Warn("client id cache read failed", zap.String("key", key), zap.Error(err))
			_ = c.redis.Del(ctx, key).Err()
		}
		return 0, false
	}
	return value, true
}

func (c *ClientIDCache) store(ctx context.Context, accountID uint64, clientPublicID string, id uint64) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	key := clientCacheKey(accountID, clientPublicID)
	if err := c.redis.Set(ctx, key, strconv.FormatUint(id, 10), c.ttl).Err(); err != nil {
		zap.L().Warn("client id cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func clientCacheKey(accountID uint64, clientPublicID string) string {
	return "client-id:" + strconv.FormatUint(accountID, 10) + ":" + clientPublicID
}

var _ ports.TaskRepository = (*ClientIDCache)(nil)

package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheTTL = 7 * 24 * time.Hour

type (
	// Cache stores embedding vectors keyed by input text. A nil Cache
	// disables caching. Cache failures are absorbed; the client falls
	// through to the service.
	Cache interface {
		Get(ctx context.Context, text string) ([]float32, bool)
		Set(ctx context.Context, text string, vector []float32)
	}

	redisCache struct {
		rdb *redis.Client
		log *zap.Logger
	}
)

func NewRedisCache(addr, password string, log *zap.Logger) Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &redisCache{rdb: rdb, log: log}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embedding:" + hex.EncodeToString(sum[:])
}

func (c *redisCache) Get(ctx context.Context, text string) ([]float32, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(text)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("embedding cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var vector []float32
	if err := json.Unmarshal(raw, &vector); err != nil {
		c.log.Debug("embedding cache entry corrupted", zap.Error(err))
		return nil, false
	}
	return vector, true
}

func (c *redisCache) Set(ctx context.Context, text string, vector []float32) {
	raw, err := json.Marshal(vector)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(text), raw, cacheTTL).Err(); err != nil {
		c.log.Debug("embedding cache set failed", zap.Error(err))
	}
}

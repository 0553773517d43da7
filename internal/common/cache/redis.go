// internal/common/cache/redis.go
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"entsite/internal/common/config"
	"entsite/internal/common/logger"
)

// Redis is an optional cache backend that survives across runs. Backend
// errors degrade to a miss; the lookup just refetches.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedis(cfg config.RedisConfig, log logger.Logger) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &Redis{
		client: rdb,
		ttl:    time.Duration(cfg.TTL) * time.Second,
		logger: log,
	}
}

// Ping tests the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		r.logger.Warn("redis cache get failed, treating as miss", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return "", false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		r.logger.Warn("redis cache set failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"vetassist/config"

	"github.com/go-redis/redis/v8"
)

// NewCacheClient connects to the cache database and verifies it with a ping.
func NewCacheClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	return client, nil
}

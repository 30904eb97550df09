package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"brandchat/internal/config"
)

// RedisCache wraps a go-redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Close closes the connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Client returns the raw client.
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

package redis

import (
	"context"
	"fmt"

	"EduLens/internal/config"

	"github.com/go-redis/redis/v8"
)

// NewClient creates a redis client from the given configuration and pings the
// server to verify the connection.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := c.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	return c, nil
}

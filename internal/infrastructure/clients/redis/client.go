package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gearshare/backend/pkg/config"
)

const connectTimeout = 5 * time.Second

// Client wraps the go-redis connection used by the item cache.
type Client struct {
	client *redis.Client
}

// NewClient dials Redis and verifies the connection before returning. The
// service treats the cache as optional, so callers decide whether a dial
// failure is fatal.
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr(), err)
	}

	return &Client{client: rc}, nil
}

// Client exposes the underlying go-redis client for adapters.
func (c *Client) Client() *redis.Client {
	return c.client
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}

// Ping reports whether the connection is still healthy.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Package redis provides the Redis connection and the JSON cache used for
// market-registry responses.
package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
)

var ErrClientClosed = errors.New(errors.CodeInternal, "redis client is closed")

// Client wraps a go-redis client with lifecycle tracking.
type Client struct {
	rdb    redis.UniversalClient
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

// NewClient connects to a standalone Redis instance.
func NewClient(cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	c := &Client{
		rdb:    rdb,
		logger: log.Named("redis"),
	}
	if err := c.Ping(context.Background()); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "redis connection failed")
	}
	c.logger.Info("connected to redis", logging.String("addr", cfg.Addr))
	return c, nil
}

// Ping verifies the connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool. Idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rdb.Close()
}

// Package runlock hands out short lived leases in Redis so that only one
// process performs a scheduled run.
package runlock

import (
	"context"
	"fmt"
	"os"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	URL string `mapstructure:"url"`
}

type client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Close() error
}

// RedisLocker implements dependency.Locker with SET NX.
type RedisLocker struct {
	c     client
	owner string
}

var _ dependency.Locker = (*RedisLocker)(nil)

// New connects to the Redis server at c.URL.
func New(ctx context.Context, c Config) (*RedisLocker, error) {
	opt, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rc := redis.NewClient(opt)
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Default().InfoContext(ctx, "connected to redis", slog.String("addr", opt.Addr))
	return newLocker(rc), nil
}

func newLocker(c client) *RedisLocker {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return &RedisLocker{
		c:     c,
		owner: fmt.Sprintf("%s:%d", host, os.Getpid()),
	}
}

// Acquire reports whether this process now holds key. The lease is never
// released explicitly and expires after ttl.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.c.SetNX(ctx, key, l.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("can't acquire lock %s: %w", key, err)
	}
	return ok, nil
}

func (l *RedisLocker) Close() {
	if err := l.c.Close(); err != nil {
		slog.Default().Error("can't close redis client",
			slog.String("err", err.Error()),
		)
	}
}

package store

import (
	"context"
	"errors"
	"time"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/store/rds"
)

// newRedisAdapter wraps an existing *rds.RDS as the store.KV seam
func newRedisAdapter(r *rds.RDS) KV {
	return &redisAdapter{inner: r}
}

// redisAdapter classifies go-redis errors into perr codes
type redisAdapter struct {
	inner *rds.RDS
}

var _ KV = (*redisAdapter)(nil)

func (a *redisAdapter) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return perr.FromRedis(a.inner.Set(ctx, key, val, ttl), "redis.set")
}

// Ping verifies connectivity with redis
func (a *redisAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil redis adapter")
	}
	return perr.FromRedis(a.inner.Ping(ctx), "redis.ping")
}

func (a *redisAdapter) Close() error { return a.inner.Close() }

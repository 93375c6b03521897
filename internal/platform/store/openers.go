package store

import (
	"context"
	"time"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/store/ceph"
	"formmigrate/internal/platform/store/rds"

	"github.com/redis/go-redis/v9"
)

const (
	defaultConnectRetries = 6
	defaultPingTimeout    = 5 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

// seams for tests
var (
	newObjectStore = func(cfg CephConfig) (ObjectStore, error) {
		c, err := ceph.Open(ceph.Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			PathStyle: cfg.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return newCephAdapter(c), nil
	}
	newKV = func(cfg RedisConfig, hooks ...redis.Hook) KV {
		return newRedisAdapter(rds.Open(rds.Config{
			Addr:             cfg.Addr,
			Username:         cfg.Username,
			Password:         cfg.Password,
			DB:               cfg.DB,
			SentinelMaster:   cfg.SentinelMaster,
			SentinelNodes:    cfg.SentinelNodes,
			SentinelPassword: cfg.SentinelPassword,
			DialTimeout:      cfg.PingTimeout,
		}, hooks...))
	}
	sleep = func(ctx context.Context, d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
)

// openCeph builds the bucket client and publishes it only once the bucket answers
func openCeph(ctx context.Context, cfg Config, s *Store) (ObjectStore, error) {
	o, err := newObjectStore(cfg.Ceph)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "ceph client")
	}
	if err := pingWithBackoff(ctx, s, "ceph", o, cfg.Ceph.ConnectRetries, cfg.Ceph.PingTimeout); err != nil {
		_ = o.Close()
		return nil, err
	}
	return o, nil
}

// openRedis builds the redis client with the optional command tracer
func openRedis(ctx context.Context, cfg Config, s *Store) (KV, error) {
	var hooks []redis.Hook
	if cfg.Redis.LogCommands {
		hooks = append(hooks, rds.Tracer(s.Log, cfg.Redis.SlowCommand))
	}
	kv := newKV(cfg.Redis, hooks...)
	if err := pingWithBackoff(ctx, s, "redis", kv, cfg.Redis.ConnectRetries, cfg.Redis.PingTimeout); err != nil {
		_ = kv.Close()
		return nil, err
	}
	return kv, nil
}

// pingWithBackoff pings p until it answers, doubling the pause up to a ceiling.
// Rejected credentials and missing buckets do not heal, so they stop early
func pingWithBackoff(ctx context.Context, s *Store, name string, p Pinger, attempts int, timeout time.Duration) error {
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = p.Ping(toCtx)
		cancel()

		if lastErr == nil {
			s.Log.Debug().Str("backend", name).Int("attempt", i+1).Msg("store backend ready")
			return nil
		}
		code := perr.CodeOf(lastErr)
		if code == perr.ErrorCodeUnauthorized || code == perr.ErrorCodeConfig {
			return perr.Wrapf(lastErr, perr.ErrorCodeConfig, "%s rejected connection", name)
		}
		if ctx.Err() != nil {
			return perr.Wrapf(ctx.Err(), perr.ErrorCodeUnavailable, "%s ping canceled", name)
		}
		s.Log.Warn().Err(lastErr).Str("backend", name).Int("attempt", i+1).Dur("backoff", backoff).Msg("store backend not ready")
		if i == attempts-1 {
			break
		}
		if err := sleep(ctx, backoff); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s ping canceled", name)
		}
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}
	return perr.Wrapf(lastErr, perr.ErrorCodeUnavailable, "%s ping failed after %d attempts", name, attempts)
}

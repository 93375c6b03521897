// Package rds provides a Redis client using go-redis with optional command tracing.
// A sentinel master name switches the client to failover mode
package rds

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the universal client
type Config struct {
	Addr             string
	Username         string
	Password         string
	DB               int
	SentinelMaster   string
	SentinelNodes    []string
	SentinelPassword string
	DialTimeout      time.Duration
}

// RDS wraps a go-redis universal client
type RDS struct {
	Client redis.UniversalClient
}

var newUniversal = redis.NewUniversalClient

// Open builds the client; hooks (e.g. a tracer) are attached in order.
// It does not touch the network
func Open(cfg Config, hooks ...redis.Hook) *RDS {
	c := newUniversal(universalOptions(cfg))
	for _, h := range hooks {
		if h != nil {
			c.AddHook(h)
		}
	}
	return &RDS{Client: c}
}

func universalOptions(cfg Config) *redis.UniversalOptions {
	opts := &redis.UniversalOptions{
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	}
	if cfg.SentinelMaster != "" {
		opts.MasterName = cfg.SentinelMaster
		opts.Addrs = cfg.SentinelNodes
		opts.SentinelPassword = cfg.SentinelPassword
		return opts
	}
	opts.Addrs = []string{cfg.Addr}
	return opts
}

// Set stores val under key; ttl 0 keeps it forever
func (r *RDS) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, key, val, ttl).Err()
}

// Ping round-trips PING
func (r *RDS) Ping(ctx context.Context) error { return r.Client.Ping(ctx).Err() }

// Close releases the connection pool
func (r *RDS) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

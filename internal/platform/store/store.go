// Package store provides a unified interface to the source and destination backends
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/logger"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// Ceph is the object store seam, nil when disabled
	Ceph ObjectStore

	// Redis is the key value seam, nil when disabled
	Redis KV
}

// ObjectStore is the bucket surface the source repo needs.
// Errors are classified with perr; a missing object is perr.ErrorCodeNotFound
type ObjectStore interface {
	// List calls fn for every object name under prefix, recursively
	List(ctx context.Context, prefix string, fn func(name string) error) error
	Get(ctx context.Context, name string) ([]byte, error)
	// RemoveMany deletes names; missing names are not errors
	RemoveMany(ctx context.Context, names []string) error
	Ping(ctx context.Context) error
	Close() error
}

// KV is the key value surface the destination repo needs.
// Writes are unconditional upserts; errors are classified with perr
type KV interface {
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
// seams installed through options are kept as is
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Ceph.Enabled && s.Ceph == nil {
		c, err := openCeph(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.Ceph = c
	}

	if cfg.Redis.Enabled && s.Redis == nil {
		r, err := openRedis(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Redis = r
	}

	return s, nil
}

// Guard verifies all configured seams the Store knows about
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if s.Ceph != nil {
		if err := s.Ceph.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ceph: %w", err))
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return perr.Wrap(errors.Join(errs...), perr.ErrorCodeUnavailable, "store guard")
}

// Close closes all initialized backends gracefully
// nil backends are ignored
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error

	if s.Redis != nil {
		if e := s.Redis.Close(); e != nil {
			errs = append(errs, e)
		}
	}

	if s.Ceph != nil {
		if e := s.Ceph.Close(); e != nil {
			errs = append(errs, e)
		}
	}

	return errors.Join(errs...)
}

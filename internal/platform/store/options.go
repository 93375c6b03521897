package store

import (
	"formmigrate/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithObjectStore installs a ready ObjectStore and skips opening ceph
func WithObjectStore(o ObjectStore) Option {
	return func(s *Store) error {
		s.Ceph = o
		return nil
	}
}

// WithKV installs a ready KV and skips opening redis
func WithKV(kv KV) Option {
	return func(s *Store) error {
		s.Redis = kv
		return nil
	}
}

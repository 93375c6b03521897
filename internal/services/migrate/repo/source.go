// Package repo implements the migration ports on top of the store seams
package repo

import (
	"context"
	"sort"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/store"
	"formmigrate/internal/services/migrate/domain"
)

const defaultDeleteBatch = 1000

// SourceOptions tunes the bucket backed source
type SourceOptions struct {
	// Prefix limits listing to object names starting with it
	Prefix string
	// DeleteBatch is the number of names per multi-object delete; <=0 -> 1000
	DeleteBatch int
}

// Source is domain.SourceRepo over a Ceph bucket
type Source struct {
	objs store.ObjectStore
	opts SourceOptions
}

var _ domain.SourceRepo = (*Source)(nil)

// NewSource binds the source repo to an object store
func NewSource(objs store.ObjectStore, opts SourceOptions) *Source {
	if objs == nil {
		panic("repo.NewSource requires a non nil ObjectStore")
	}
	if opts.DeleteBatch <= 0 {
		opts.DeleteBatch = defaultDeleteBatch
	}
	return &Source{objs: objs, opts: opts}
}

// Keys lists every object name under the prefix, sorted and without duplicates
func (s *Source) Keys(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	err := s.objs.List(ctx, s.opts.Prefix, func(name string) error {
		if _, dup := seen[name]; dup {
			return nil
		}
		seen[name] = struct{}{}
		out = append(out, name)
		return nil
	})
	if err != nil {
		return nil, perr.Wrap(err, sourceCode(err), "list source keys")
	}
	sort.Strings(out)
	return out, nil
}

// Get reads and checks a record; a missing object is reported as ok=false
func (s *Source) Get(ctx context.Context, key string) (domain.FormData, bool, error) {
	raw, err := s.objs.Get(ctx, key)
	if err != nil {
		if perr.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, perr.WithField(perr.Wrap(err, sourceCode(err), "get form data"), key)
	}
	fd, err := decode(raw)
	if err != nil {
		return nil, false, perr.WithField(err, key)
	}
	return fd, true, nil
}

// Delete removes keys in batches; one call per batch, empty input does nothing
func (s *Source) Delete(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += s.opts.DeleteBatch {
		end := min(start+s.opts.DeleteBatch, len(keys))
		if err := s.objs.RemoveMany(ctx, keys[start:end]); err != nil {
			return perr.Wrapf(err, sourceCode(err), "delete %d keys from source", end-start)
		}
	}
	return nil
}

// sourceCode keeps connectivity codes and files everything else under source
func sourceCode(err error) perr.ErrorCode {
	switch c := perr.CodeOf(err); c {
	case perr.ErrorCodeUnavailable, perr.ErrorCodeUnauthorized, perr.ErrorCodeConfig:
		return c
	}
	return perr.ErrorCodeSource
}

package store

import (
	"context"
	"errors"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/store/ceph"
)

// newCephAdapter wraps an existing *ceph.Ceph as the store.ObjectStore seam
func newCephAdapter(c *ceph.Ceph) ObjectStore {
	return &cephAdapter{inner: c}
}

// cephAdapter classifies minio errors into perr codes
type cephAdapter struct {
	inner *ceph.Ceph
}

var _ ObjectStore = (*cephAdapter)(nil)

func (a *cephAdapter) List(ctx context.Context, prefix string, fn func(string) error) error {
	var cbErr error
	err := a.inner.List(ctx, prefix, func(name string) error {
		if e := fn(name); e != nil {
			cbErr = e
			return e
		}
		return nil
	})
	if cbErr != nil {
		return cbErr
	}
	return perr.FromS3(err, "ceph.list")
}

func (a *cephAdapter) Get(ctx context.Context, name string) ([]byte, error) {
	b, err := a.inner.Get(ctx, name)
	if err != nil {
		return nil, perr.FromS3(err, "ceph.get")
	}
	return b, nil
}

func (a *cephAdapter) RemoveMany(ctx context.Context, names []string) error {
	return perr.FromS3(a.inner.RemoveMany(ctx, names), "ceph.remove")
}

// Ping verifies the gateway answers and the bucket exists
func (a *cephAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil ceph adapter")
	}
	return perr.FromS3(a.inner.Ping(ctx), "ceph.ping")
}

func (a *cephAdapter) Close() error { return a.inner.Close() }

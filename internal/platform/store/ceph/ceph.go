// Package ceph provides a Ceph RGW client using minio-go over the S3 protocol
package ceph

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config configures the bucket client
type Config struct {
	Endpoint  string // http(s)://host:port of the RGW gateway
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	PathStyle bool
}

// Ceph is a bucket scoped S3 client
type Ceph struct {
	Client *minio.Client
	Bucket string
}

var newClient = minio.New

// Open builds a client for cfg. It does not touch the network
func Open(cfg Config) (*Ceph, error) {
	host, secure, err := splitEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	lookup := minio.BucketLookupAuto
	if cfg.PathStyle {
		lookup = minio.BucketLookupPath
	}
	c, err := newClient(host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("ceph: create client: %w", err)
	}
	return &Ceph{Client: c, Bucket: cfg.Bucket}, nil
}

// splitEndpoint turns http(s)://host:port into the host and TLS flag minio wants
func splitEndpoint(raw string) (host string, secure bool, err error) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("ceph: invalid endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("ceph: endpoint %q has no host", raw)
	}
	switch u.Scheme {
	case "https":
		secure = true
	case "http":
	default:
		return "", false, fmt.Errorf("ceph: unsupported endpoint scheme %q", u.Scheme)
	}
	return u.Host, secure, nil
}

// List walks every object name under prefix, recursively
func (c *Ceph) List(ctx context.Context, prefix string, fn func(name string) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range c.Client.ListObjects(ctx, c.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return obj.Err
		}
		if err := fn(obj.Key); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// Get reads the full object body
func (c *Ceph) Get(ctx context.Context, name string) ([]byte, error) {
	obj, err := c.Client.GetObject(ctx, c.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = obj.Close() }()
	// GetObject is lazy; a missing key surfaces on first read
	return io.ReadAll(obj)
}

// RemoveMany deletes names with multi-object delete requests.
// Missing objects are not errors on S3, so repeated calls are safe
func (c *Ceph) RemoveMany(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	objs := make(chan minio.ObjectInfo, len(names))
	for _, n := range names {
		objs <- minio.ObjectInfo{Key: n}
	}
	close(objs)

	var first error
	for rerr := range c.Client.RemoveObjects(ctx, c.Bucket, objs, minio.RemoveObjectsOptions{}) {
		if first == nil && rerr.Err != nil {
			first = fmt.Errorf("remove %q: %w", rerr.ObjectName, rerr.Err)
		}
	}
	return first
}

// Ping checks the bucket is reachable and exists
func (c *Ceph) Ping(ctx context.Context) error {
	ok, err := c.Client.BucketExists(ctx, c.Bucket)
	if err != nil {
		return err
	}
	if !ok {
		return minio.ErrorResponse{Code: "NoSuchBucket", BucketName: c.Bucket, Message: "bucket does not exist"}
	}
	return nil
}

// Close is a no-op; minio clients hold no long lived resources
func (c *Ceph) Close() error { return nil }

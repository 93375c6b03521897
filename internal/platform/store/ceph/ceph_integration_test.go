//go:build integration_ceph
// +build integration_ceph

package ceph

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	perr "formmigrate/internal/platform/errors"

	"github.com/minio/minio-go/v7"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testAccess = "minioadmin"
	testSecret = "minioadmin"
)

// startMinio runs an S3 compatible server standing in for the RGW gateway
func startMinio(t *testing.T) (endpoint string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "minio/minio:RELEASE.2024-06-13T22-53-53Z",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     testAccess,
			"MINIO_ROOT_PASSWORD": testSecret,
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/ready").WithPort("9000/tcp").WithStartupTimeout(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start minio container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "9000/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	endpoint = fmt.Sprintf("http://%s:%s", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return endpoint, stop
}

func TestCeph_ListGetRemove_Integration(t *testing.T) {
	endpoint, stop := startMinio(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	c, err := Open(Config{Endpoint: endpoint, AccessKey: testAccess, SecretKey: testSecret, Bucket: "forms", PathStyle: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// missing bucket is reported by Ping
	if err := c.Ping(ctx); !perr.IsCode(perr.FromS3(err, "ping"), perr.ErrorCodeConfig) {
		t.Fatalf("Ping on missing bucket = %v", err)
	}
	if err := c.Client.MakeBucket(ctx, "forms", minio.MakeBucketOptions{}); err != nil {
		t.Fatalf("MakeBucket: %v", err)
	}
	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	names := []string{"process/1/task/a", "process/2/task/b", "junk"}
	for _, n := range names {
		body := []byte(`{"data":{"n":"` + n + `"}}`)
		if _, err := c.Client.PutObject(ctx, "forms", n, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{}); err != nil {
			t.Fatalf("PutObject %s: %v", n, err)
		}
	}

	var listed []string
	if err := c.List(ctx, "", func(n string) error { listed = append(listed, n); return nil }); err != nil {
		t.Fatalf("List: %v", err)
	}
	sort.Strings(listed)
	if len(listed) != 3 || listed[0] != "junk" {
		t.Fatalf("listed = %v", listed)
	}

	var scoped []string
	if err := c.List(ctx, "process/", func(n string) error { scoped = append(scoped, n); return nil }); err != nil {
		t.Fatalf("List prefix: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("prefix listing = %v", scoped)
	}

	body, err := c.Get(ctx, "process/1/task/a")
	if err != nil || !bytes.Contains(body, []byte("process/1/task/a")) {
		t.Fatalf("Get = %q, %v", body, err)
	}
	if _, err := c.Get(ctx, "process/9/task/z"); !perr.IsNotFound(err) {
		t.Fatalf("Get missing = %v, want not found", err)
	}

	// missing names are ignored
	if err := c.RemoveMany(ctx, []string{"junk", "process/1/task/a", "never-existed"}); err != nil {
		t.Fatalf("RemoveMany: %v", err)
	}
	listed = listed[:0]
	_ = c.List(ctx, "", func(n string) error { listed = append(listed, n); return nil })
	if len(listed) != 1 || listed[0] != "process/2/task/b" {
		t.Fatalf("after remove = %v", listed)
	}
}

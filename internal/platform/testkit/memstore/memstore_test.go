package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "formmigrate/internal/platform/errors"
)

func TestObjects_ListGetRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	o := NewObjects(map[string]string{"a/1": "x", "a/2": "y", "b/1": "z"})

	var got []string
	if err := o.List(ctx, "a/", func(n string) error { got = append(got, n); return nil }); err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0] != "a/1" || got[1] != "a/2" {
		t.Fatalf("List = %v", got)
	}

	if _, err := o.Get(ctx, "missing"); !perr.IsNotFound(err) {
		t.Fatalf("Get missing = %v", err)
	}
	if err := o.RemoveMany(ctx, []string{"a/1", "nope"}); err != nil {
		t.Fatalf("RemoveMany: %v", err)
	}
	if o.Has("a/1") || !o.Has("a/2") || len(o.Removed) != 1 {
		t.Fatalf("remove bookkeeping wrong: %v %v", o.Names(), o.Removed)
	}
}

func TestObjects_Failures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("boom")
	o := NewObjects(map[string]string{"k": "v"})
	o.FailList = boom
	o.FailGet["k"] = boom
	o.FailRemove = boom

	if err := o.List(ctx, "", func(string) error { return nil }); !errors.Is(err, boom) {
		t.Fatalf("List = %v", err)
	}
	if _, err := o.Get(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("Get = %v", err)
	}
	if err := o.RemoveMany(ctx, []string{"k"}); !errors.Is(err, boom) || !o.Has("k") {
		t.Fatalf("RemoveMany = %v", err)
	}
}

func TestKV_SetGetDel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := NewKV()
	if err := kv.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if b, err := kv.Get(ctx, "k"); err != nil || string(b) != "v" || kv.TTL("k") != time.Hour {
		t.Fatalf("Get = %q %v", b, err)
	}
	if _, err := kv.Get(ctx, "other"); !perr.IsNotFound(err) || kv.Len() != 1 {
		t.Fatalf("missing key = %v, len %d", err, kv.Len())
	}
	kv.FailSet["bad"] = errors.New("nope")
	if err := kv.Set(ctx, "bad", nil, 0); err == nil {
		t.Fatalf("expected injected failure")
	}
}

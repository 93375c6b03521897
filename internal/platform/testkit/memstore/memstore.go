// Package memstore provides in-memory fakes of the store seams for tests
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/store"
)

// Objects is an in-memory store.ObjectStore.
// Fail* fields inject errors; calls are recorded for assertions
type Objects struct {
	mu   sync.Mutex
	data map[string][]byte

	FailList   error
	FailGet    map[string]error
	FailRemove error
	FailPing   error

	Removed     [][]string // one entry per RemoveMany call
	ListedCalls int
}

var _ store.ObjectStore = (*Objects)(nil)

// NewObjects seeds a fake bucket
func NewObjects(seed map[string]string) *Objects {
	o := &Objects{data: map[string][]byte{}, FailGet: map[string]error{}}
	for k, v := range seed {
		o.data[k] = []byte(v)
	}
	return o
}

// Put stores raw bytes under name
func (o *Objects) Put(name string, body []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.data[name] = append([]byte(nil), body...)
}

// Has reports whether name is present
func (o *Objects) Has(name string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.data[name]
	return ok
}

// Names returns stored names sorted
func (o *Objects) Names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.data))
	for k := range o.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (o *Objects) List(ctx context.Context, prefix string, fn func(string) error) error {
	o.mu.Lock()
	o.ListedCalls++
	failList := o.FailList
	o.mu.Unlock()
	if failList != nil {
		return failList
	}
	for _, n := range o.Names() {
		if !strings.HasPrefix(n, prefix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

func (o *Objects) Get(_ context.Context, name string) ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.FailGet[name]; err != nil {
		return nil, err
	}
	b, ok := o.data[name]
	if !ok {
		return nil, perr.NotFoundf("object %q not found", name)
	}
	return append([]byte(nil), b...), nil
}

func (o *Objects) RemoveMany(_ context.Context, names []string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Removed = append(o.Removed, append([]string(nil), names...))
	if o.FailRemove != nil {
		return o.FailRemove
	}
	for _, n := range names {
		delete(o.data, n)
	}
	return nil
}

func (o *Objects) Ping(context.Context) error { return o.FailPing }
func (o *Objects) Close() error               { return nil }

// KV is an in-memory store.KV
type KV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  map[string]time.Duration

	FailSet  map[string]error
	FailPing error
	Closed   bool
}

var _ store.KV = (*KV)(nil)

// NewKV returns an empty fake
func NewKV() *KV {
	return &KV{data: map[string][]byte{}, ttl: map[string]time.Duration{}, FailSet: map[string]error{}}
}

// TTL returns the ttl recorded for key
func (k *KV) TTL(key string) time.Duration {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ttl[key]
}

// Len reports the number of stored keys
func (k *KV) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.data)
}

func (k *KV) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.FailSet[key]; err != nil {
		return err
	}
	k.data[key] = append([]byte(nil), val...)
	k.ttl[key] = ttl
	return nil
}

// Get reads back a stored value for assertions
func (k *KV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	b, ok := k.data[key]
	if !ok {
		return nil, perr.NotFoundf("key %q not found", key)
	}
	return append([]byte(nil), b...), nil
}

func (k *KV) Ping(context.Context) error { return k.FailPing }

func (k *KV) Close() error {
	k.mu.Lock()
	k.Closed = true
	k.mu.Unlock()
	return nil
}

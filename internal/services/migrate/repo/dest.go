package repo

import (
	"context"
	"time"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/store"
	"formmigrate/internal/services/migrate/domain"
)

// DestOptions tunes the redis backed destination
type DestOptions struct {
	// TTL is the expiry set on every written key; 0 keeps keys forever
	TTL time.Duration
}

// Dest is domain.DestRepo over redis
type Dest struct {
	kv   store.KV
	opts DestOptions
}

var _ domain.DestRepo = (*Dest)(nil)

// NewDest binds the destination repo to a key value store
func NewDest(kv store.KV, opts DestOptions) *Dest {
	if kv == nil {
		panic("repo.NewDest requires a non nil KV")
	}
	return &Dest{kv: kv, opts: opts}
}

// Put overwrites key with fd; there is no existence check
func (d *Dest) Put(ctx context.Context, key string, fd domain.FormData) error {
	body, err := encode(fd)
	if err != nil {
		return perr.WithField(err, key)
	}
	if err := d.kv.Set(ctx, key, body, d.opts.TTL); err != nil {
		code := perr.CodeOf(err)
		if code != perr.ErrorCodeUnavailable && code != perr.ErrorCodeUnauthorized {
			code = perr.ErrorCodeDestination
		}
		return perr.WithField(perr.Wrap(err, code, "put form data"), key)
	}
	return nil
}

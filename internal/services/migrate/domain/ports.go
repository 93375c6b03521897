package domain

import "context"

// RunnerPort is public port exposed by the module (what the job binary calls)
type RunnerPort interface {
	Run(ctx context.Context) (Report, error)
}

// SourceRepo is the store records are migrated from
type SourceRepo interface {
	// Keys returns a complete snapshot of every stored key, without duplicates
	Keys(ctx context.Context) ([]string, error)

	// Get returns the record; ok is false when nothing is stored under key
	Get(ctx context.Context, key string) (fd FormData, ok bool, err error)

	// Delete removes keys; missing keys are ignored and an empty slice is a no-op
	Delete(ctx context.Context, keys []string) error
}

// DestRepo is the store records are migrated to
type DestRepo interface {
	// Put stores fd under key, overwriting whatever is there
	Put(ctx context.Context, key string, fd FormData) error
}

// KeyValidator decides which listed keys are form data keys
type KeyValidator interface {
	IsValid(key string) bool
}

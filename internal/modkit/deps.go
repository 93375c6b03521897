// Package modkit provides module wiring and core deps
package modkit

import (
	"formmigrate/internal/platform/config"
	"formmigrate/internal/platform/logger"
	"formmigrate/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	Store *store.Store
}

// Source returns the object store seam or nil when the store is absent or disabled
func (d Deps) Source() store.ObjectStore {
	if d.Store == nil {
		return nil
	}
	return d.Store.Ceph
}

// Dest returns the key value seam or nil when the store is absent or disabled
func (d Deps) Dest() store.KV {
	if d.Store == nil {
		return nil
	}
	return d.Store.Redis
}

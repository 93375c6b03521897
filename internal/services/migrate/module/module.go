// Package module provides the form data migration module implementation
package module

import (
	"formmigrate/internal/core/keyvalidator"
	"formmigrate/internal/modkit"
	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/services/migrate/domain"
	"formmigrate/internal/services/migrate/repo"
	"formmigrate/internal/services/migrate/service"
)

// Ports defines the migration module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the migration module
type Module struct {
	name     string
	deps     modkit.Deps
	ports    Ports
	patterns []string
}

var _ modkit.Module = (*Module)(nil)

// New constructs the migration module
// It wires the source and destination repos from deps.Store and compiles the
// key pattern set. A domain.KeyValidator passed with modkit.WithPorts replaces
// the compiled one
func New(deps modkit.Deps, o Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build("migrate", opts...)

	if err := o.Validate(); err != nil {
		return nil, err
	}
	src, dst := deps.Source(), deps.Dest()
	if src == nil {
		return nil, perr.Configf("migrate: source store is not configured")
	}
	if dst == nil {
		return nil, perr.Configf("migrate: destination store is not configured")
	}

	var v domain.KeyValidator
	var active []string
	if pv, ok := b.Ports.(domain.KeyValidator); ok {
		v = pv
	} else {
		extra, err := o.Patterns()
		if err != nil {
			return nil, err
		}
		kv, err := keyvalidator.New(extra...)
		if err != nil {
			return nil, err
		}
		v, active = kv, kv.Patterns()
	}

	svc := service.New(
		repo.NewSource(src, repo.SourceOptions{Prefix: o.SourcePrefix, DeleteBatch: o.DeleteBatch}),
		repo.NewDest(dst, repo.DestOptions{TTL: o.TTL}),
		v,
		service.Config{
			Policy:       o.Policy(),
			Workers:      o.Workers,
			LogKeysLimit: o.LogKeysLimit,
			Log:          &deps.Log,
		},
	)

	m := &Module{name: b.Name, deps: deps, patterns: active}
	m.ports = Ports{Runner: svc}

	deps.Log.Info().
		Str("module", m.name).
		Strs("key_patterns", active).
		Msg("migration module ready")
	return m, nil
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Patterns returns the compiled key patterns, empty when a validator was injected
func (m *Module) Patterns() []string { return append([]string(nil), m.patterns...) }

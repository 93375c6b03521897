package modkit

import (
	"testing"

	"formmigrate/internal/platform/store"
)

type stub struct{ ports any }

func (s *stub) Ports() any   { return s.ports }
func (s *stub) Name() string { return "stub" }

var _ Module = (*stub)(nil)

func TestBuilder_TypeSignatureAndUse(t *testing.T) {
	t.Parallel()

	var b Builder = func(_ Deps, _ ...Option) (Module, error) {
		return &stub{ports: "ok"}, nil
	}
	m, err := b(Deps{})
	if err != nil || m == nil || m.Ports() != "ok" {
		t.Fatalf("unexpected module %v, %v", m, err)
	}
}

func TestBuild_DefaultsAndOptions(t *testing.T) {
	t.Parallel()

	b := Build("migrate")
	if b.Name != "migrate" || b.Ports != nil {
		t.Fatalf("defaults wrong: %+v", b)
	}
	if b = Build("migrate", WithName("")); b.Name != "migrate" {
		t.Fatalf("empty name must keep the default, got %q", b.Name)
	}
	b = Build("migrate", WithName("other"), nil, WithPorts(42))
	if b.Name != "other" || b.Ports != 42 {
		t.Fatalf("options not applied: %+v", b)
	}
}

func TestDeps_Seams(t *testing.T) {
	t.Parallel()

	var d Deps
	if d.Source() != nil || d.Dest() != nil {
		t.Fatalf("zero deps should have nil seams")
	}
	d.Store = &store.Store{}
	if d.Source() != nil || d.Dest() != nil {
		t.Fatalf("disabled backends should be nil")
	}
}

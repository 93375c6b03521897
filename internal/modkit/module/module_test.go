package module

import (
	"testing"

	"formmigrate/internal/platform/testkit"
)

type runner interface{ Run() string }

type impl struct{}

func (impl) Run() string { return "ran" }

type portSet struct {
	hidden runner
	Runner runner
}

type stubModule struct{ ports any }

func (s *stubModule) Ports() any   { return s.ports }
func (s *stubModule) Name() string { return "stub" }

func TestPortsOf_StructField(t *testing.T) {
	t.Parallel()

	m := &stubModule{ports: portSet{Runner: impl{}}}
	r, ok := PortsOf[runner](m)
	if !ok || r.Run() != "ran" {
		t.Fatalf("PortsOf did not find exported field")
	}
}

func TestPortsOf_DirectAndMissing(t *testing.T) {
	t.Parallel()

	if r, ok := PortsOf[runner](&stubModule{ports: impl{}}); !ok || r == nil {
		t.Fatalf("direct implementation not found")
	}
	if _, ok := PortsOf[runner](&stubModule{}); ok {
		t.Fatalf("nil ports should not resolve")
	}
	// unexported fields are skipped
	if _, ok := PortsOf[runner](&stubModule{ports: portSet{hidden: impl{}}}); ok {
		t.Fatalf("unexported field should be ignored")
	}
}

func TestPortsOf_PointerBundle(t *testing.T) {
	t.Parallel()

	if r, ok := PortsOf[runner](&stubModule{ports: &portSet{Runner: impl{}}}); !ok || r.Run() != "ran" {
		t.Fatalf("pointer bundle not followed")
	}
	var nilSet *portSet
	if _, ok := PortsOf[runner](&stubModule{ports: nilSet}); ok {
		t.Fatalf("nil pointer bundle should not resolve")
	}
}

func TestMustPortsOf_PanicsNamingModule(t *testing.T) {
	t.Parallel()

	testkit.MustPanicWith(t, "module stub exposes no", func() {
		_ = MustPortsOf[runner](&stubModule{ports: 1})
	})
}

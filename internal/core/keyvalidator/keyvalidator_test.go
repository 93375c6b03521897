package keyvalidator

import (
	"regexp"
	"sync"
	"testing"

	"formmigrate/internal/core/formkey"
	perr "formmigrate/internal/platform/errors"
)

func mustNew(t *testing.T, extra ...string) *Validator {
	t.Helper()
	v, err := New(extra...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func TestBuiltInShapes(t *testing.T) {
	t.Parallel()

	v := mustNew(t)
	valid := []string{
		"process/123/task/abc",
		formkey.StartForm("order", "0b7c1a5e-6d4f-4c62-9a5e-1b7d3e8c2f10"),
		formkey.ExternalSystem("order", "x"),
		formkey.SystemSignature("pi", "u"),
		formkey.BatchSystemSignature("pi", 12),
	}
	for _, k := range valid {
		if !v.IsValid(k) {
			t.Fatalf("%q should be valid", k)
		}
	}
	invalid := []string{
		"random-key",
		"",
		"process/123/task",
		"prefix/process/1/task/2",
		"lowcode_pi_system_signature",
	}
	for _, k := range invalid {
		if v.IsValid(k) {
			t.Fatalf("%q should be invalid", k)
		}
	}
}

func TestFullMatchSemantics(t *testing.T) {
	t.Parallel()

	v := FromPatterns([]*regexp.Regexp{regexp.MustCompile(`abc`)})
	if !v.IsValid("abc") {
		t.Fatalf("exact key should match")
	}
	if v.IsValid("xabcx") {
		t.Fatalf("substring must not count as a match")
	}
	// alternation must not escape the anchors
	v = mustNew(t, "a|b")
	if v.IsValid("ab") || !v.IsValid("a") || !v.IsValid("b") {
		t.Fatalf("anchoring broken for alternation")
	}
}

func TestAdditionalPatterns(t *testing.T) {
	t.Parallel()

	base := mustNew(t)
	if base.IsValid("legacy/42") {
		t.Fatalf("legacy key should not match built-ins")
	}
	v := mustNew(t, "legacy/[0-9]+", "  ", "with,comma{1,2}")
	if !v.IsValid("legacy/42") {
		t.Fatalf("extra pattern not applied")
	}
	if !v.IsValid("with,commaa") {
		t.Fatalf("patterns containing commas must survive")
	}
	if v.Len() != base.Len()+2 {
		t.Fatalf("blank entries should be skipped, len=%d", v.Len())
	}
	ps := v.Patterns()
	if ps[0] != formkey.Pattern(formkey.TaskFormat) || ps[len(ps)-1] != "with,comma{1,2}" {
		t.Fatalf("order not preserved: %v", ps)
	}
}

func TestMonotonic(t *testing.T) {
	t.Parallel()

	keys := []string{"process/1/task/2", "legacy/1", "junk", "lowcode_a_b_system_signature_ceph_key"}
	small := mustNew(t)
	big := mustNew(t, "legacy/.*", "zzz")
	for _, k := range keys {
		if small.IsValid(k) && !big.IsValid(k) {
			t.Fatalf("adding patterns removed match for %q", k)
		}
	}
}

func TestMalformedPattern_IsConfigError(t *testing.T) {
	t.Parallel()

	v, err := New("ok", "(unclosed")
	if v != nil || err == nil {
		t.Fatalf("expected failure, got %v", v)
	}
	if !perr.IsCode(err, perr.ErrorCodeConfig) || !perr.IsFatal(err) {
		t.Fatalf("want fatal config error, got %v", err)
	}
	e, _ := perr.As(err)
	if e.Field() != "(unclosed" {
		t.Fatalf("offending pattern not named: %q", e.Field())
	}
}

func TestEmptySet(t *testing.T) {
	t.Parallel()

	v := FromPatterns(nil)
	for _, k := range []string{"", "process/1/task/2", "x"} {
		if v.IsValid(k) {
			t.Fatalf("empty set must reject %q", k)
		}
	}
	var nilV *Validator
	if nilV.IsValid("x") || nilV.Len() != 0 || nilV.Patterns() != nil {
		t.Fatalf("nil validator should be inert")
	}
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	v := mustNew(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if !v.IsValid(formkey.BatchSystemSignature("pi", j)) {
					t.Errorf("goroutine %d: key %d rejected", i, j)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

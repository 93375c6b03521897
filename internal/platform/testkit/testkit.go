// Package testkit holds small assertions and seam helpers shared by tests
package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	if recovered(fn) == nil {
		t.Fatalf("expected panic, got none")
	}
}

// MustPanicWith fails unless fn panics with a value whose text contains needle
func MustPanicWith(t *testing.T, needle string, fn func()) {
	t.Helper()
	r := recovered(fn)
	if r == nil {
		t.Fatalf("expected panic containing %q, got none", needle)
	}
	if msg := fmt.Sprint(r); !strings.Contains(msg, needle) {
		t.Fatalf("panic %q does not contain %q", msg, needle)
	}
}

func recovered(fn func()) (r any) {
	defer func() { r = recover() }()
	fn()
	return nil
}

// MustContain fails unless haystack contains needle.
// Long haystacks such as captured logs are dumped to a temp file instead of the test output
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	if len(haystack) <= 512 {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
	dump := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(dump, []byte(haystack), 0o600)
	t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, dump)
}

// WriteTemp writes body to name inside a per test directory and returns the path
func WriteTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

var seamMu sync.Mutex

// Swap replaces a package level seam for the rest of the test
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process wide lock until the test ends.
// Tests that Swap package seams call it first
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}

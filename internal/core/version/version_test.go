package version

import "testing"

func TestInfo_String(t *testing.T) {
	t.Parallel()

	bi := Info()
	if bi.Service != "formmigrate" || bi.Version == "" {
		t.Fatalf("info = %+v", bi)
	}
	want := "formmigrate dev (commit none, built unknown)"
	if got := bi.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

package validate

import (
	"testing"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/testkit"
)

type sample struct {
	Addr     string   `env:"STORAGE_REDIS_ADDR" validate:"required,host_port"`
	Bucket   string   `env:"STORAGE_CEPH_BUCKET" validate:"required"`
	Patterns []string `env:"CORE_MIGRATION_ADDITIONAL_KEY_PATTERNS" validate:"regexp"`
	Workers  int      `validate:"min=1"`
}

func good() sample {
	return sample{Addr: "localhost:6379", Bucket: "forms", Patterns: []string{"a.*", "b,c"}, Workers: 1}
}

func TestStruct_OK(t *testing.T) {
	t.Parallel()

	if err := Struct(good()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_RequiredUsesEnvName(t *testing.T) {
	t.Parallel()

	s := good()
	s.Bucket = ""
	err := Struct(s)
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("want config error, got %v", err)
	}
	e, _ := perr.As(err)
	if e.Field() != "STORAGE_CEPH_BUCKET" {
		t.Fatalf("field = %q", e.Field())
	}
	testkit.MustContain(t, err.Error(), "STORAGE_CEPH_BUCKET is a required field")
}

func TestStruct_HostPort(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"localhost", "localhost:", "redis://x:1"} {
		s := good()
		s.Addr = bad
		err := Struct(s)
		if err == nil {
			t.Fatalf("%q should fail host_port", bad)
		}
		testkit.MustContain(t, err.Error(), "STORAGE_REDIS_ADDR must be host:port")
	}
	s := good()
	s.Addr = ":6379"
	if err := Struct(s); err != nil {
		t.Fatalf("bare port should pass: %v", err)
	}
}

func TestStruct_Regexp(t *testing.T) {
	t.Parallel()

	s := good()
	s.Patterns = []string{"ok", "(unclosed"}
	err := Struct(s)
	if err == nil {
		t.Fatalf("bad pattern should fail")
	}
	testkit.MustContain(t, err.Error(), "must contain valid regular expressions")
}

func TestStruct_FallbackFieldName(t *testing.T) {
	t.Parallel()

	s := good()
	s.Workers = 0
	err := Struct(s)
	if err == nil {
		t.Fatalf("workers=0 should fail")
	}
	testkit.MustContain(t, err.Error(), "Workers")
}

func TestFieldAndMessage_Nil(t *testing.T) {
	t.Parallel()

	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil err should give empty strings")
	}
}

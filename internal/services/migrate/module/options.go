package module

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"formmigrate/internal/platform/config"
	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/validate"
	"formmigrate/internal/services/migrate/domain"

	"gopkg.in/yaml.v3"
)

// patternSep separates additional patterns in env; regexes often contain commas
const patternSep = ";"

// Options holds configuration options for the migration module
type Options struct {
	DeleteAfterMigration bool     `env:"CORE_MIGRATION_DELETE_AFTER_MIGRATION"`
	DeleteInvalidData    bool     `env:"CORE_MIGRATION_DELETE_INVALID_DATA"`
	AdditionalPatterns   []string `env:"CORE_MIGRATION_ADDITIONAL_KEY_PATTERNS" validate:"regexp"`
	PatternsFile         string   `env:"CORE_MIGRATION_KEY_PATTERNS_FILE"`
	Workers              int      `env:"CORE_MIGRATION_WORKERS" validate:"min=1,max=64"`
	LogKeysLimit         int      `env:"CORE_MIGRATION_LOG_KEYS_LIMIT" validate:"min=0"`

	// storage side knobs the repos need
	SourcePrefix string        `env:"STORAGE_CEPH_PREFIX"`
	DeleteBatch  int           `env:"STORAGE_CEPH_DELETE_BATCH" validate:"min=1,max=1000"`
	TTL          time.Duration `env:"STORAGE_REDIS_TTL" validate:"min=0"`
}

// Policy returns the deletion policy of the run
func (o Options) Policy() domain.Policy {
	return domain.Policy{
		DeleteAfterMigration: o.DeleteAfterMigration,
		DeleteInvalidData:    o.DeleteInvalidData,
	}
}

// FromConfig reads the migration options from config with CORE_MIGRATION_ prefix
func FromConfig(cfg config.Conf) Options {
	mg := cfg.Prefix("CORE_MIGRATION_")
	return Options{
		DeleteAfterMigration: mg.MayBool("DELETE_AFTER_MIGRATION", false),
		DeleteInvalidData:    mg.MayBool("DELETE_INVALID_DATA", false),
		AdditionalPatterns:   mg.MayList("ADDITIONAL_KEY_PATTERNS", patternSep, nil),
		PatternsFile:         mg.MayString("KEY_PATTERNS_FILE", ""),
		Workers:              mg.MayInt("WORKERS", 1),
		LogKeysLimit:         mg.MayInt("LOG_KEYS_LIMIT", 1000),

		SourcePrefix: cfg.Prefix("STORAGE_CEPH_").MayString("PREFIX", ""),
		DeleteBatch:  cfg.Prefix("STORAGE_CEPH_").MayInt("DELETE_BATCH", 1000),
		TTL:          cfg.Prefix("STORAGE_REDIS_").MayDuration("TTL", 0),
	}
}

// Validate checks ranges and that every additional pattern compiles
func (o Options) Validate() error { return validate.Struct(o) }

// patternsFile is the YAML shape of CORE_MIGRATION_KEY_PATTERNS_FILE
type patternsFile struct {
	AdditionalKeyPatterns []string `yaml:"additional_key_patterns"`
}

// LoadPatternsFile reads extra key patterns from a YAML document such as
//
//	additional_key_patterns:
//	  - 'legacy/(.*)'
func LoadPatternsFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, "read key patterns file"), path)
	}
	var pf patternsFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, "parse key patterns file"), path)
	}
	out := make([]string, 0, len(pf.AdditionalKeyPatterns))
	for _, p := range pf.AdditionalKeyPatterns {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// Patterns merges env/flag patterns with the file, in that order
func (o Options) Patterns() ([]string, error) {
	out := append([]string(nil), o.AdditionalPatterns...)
	if o.PatternsFile == "" {
		return out, nil
	}
	fromFile, err := LoadPatternsFile(o.PatternsFile)
	if err != nil {
		return nil, err
	}
	return append(out, fromFile...), nil
}

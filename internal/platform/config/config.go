// Package config reads job configuration from environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"formmigrate/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g. "STORAGE_CEPH_", "CORE_MIGRATION_")
// Use New() for global access, or Prefix() for component scopes
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("STORAGE_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, "int", def, strconv.Atoi)
}

// MayBool accepts strconv bools plus yes/no; def if missing/empty or invalid
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, "bool", def, parseBool)
}

// MayDuration parses Go durations such as "24h" or "150ms"
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, "duration", def, time.ParseDuration)
}

// may reads key with parse; a bad value is logged and replaced by def
func may[T any](c Conf, key, kind string, def T, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.key(key)).
			Str("value", s).
			Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// MayCSV returns a slice of strings from a comma-separated env var; def if missing/empty
func (c Conf) MayCSV(key string, def []string) []string {
	return c.MayList(key, ",", def)
}

// MayList splits the value on sep, dropping blank items; def if nothing remains.
// Regex lists use a separator that cannot appear in a quantifier, e.g. ";"
func (c Conf) MayList(key, sep string, def []string) []string {
	s := c.get(key)
	if s == "" {
		return def
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

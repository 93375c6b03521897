// Package keyvalidator decides whether a source key has one of the expected
// form data shapes. A key is valid when it fully matches at least one pattern
package keyvalidator

import (
	"regexp"
	"strings"

	"formmigrate/internal/core/formkey"
	perr "formmigrate/internal/platform/errors"
)

// Validator is an ordered, immutable pattern set; safe for concurrent use
type Validator struct {
	src      []string
	compiled []*regexp.Regexp
}

// New compiles the built-in key shapes followed by extra.
// Blank extra entries are skipped; a malformed one is a configuration error
func New(extra ...string) (*Validator, error) {
	src := formkey.Patterns()
	for _, p := range extra {
		if strings.TrimSpace(p) == "" {
			continue
		}
		src = append(src, p)
	}

	v := &Validator{src: make([]string, 0, len(src)), compiled: make([]*regexp.Regexp, 0, len(src))}
	for _, p := range src {
		re, err := anchor(p)
		if err != nil {
			return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeConfig, "invalid key pattern %q", p), p)
		}
		v.src = append(v.src, p)
		v.compiled = append(v.compiled, re)
	}
	return v, nil
}

// FromPatterns uses ps exactly as given; an empty set rejects every key.
// Patterns are matched against the whole key
func FromPatterns(ps []*regexp.Regexp) *Validator {
	v := &Validator{src: make([]string, 0, len(ps)), compiled: make([]*regexp.Regexp, 0, len(ps))}
	for _, re := range ps {
		if re == nil {
			continue
		}
		v.src = append(v.src, re.String())
		v.compiled = append(v.compiled, regexp.MustCompile(`^(?:`+re.String()+`)$`))
	}
	return v
}

// anchor compiles p so that it has to consume the whole key
func anchor(p string) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(p); err != nil {
		return nil, err
	}
	return regexp.Compile(`^(?:` + p + `)$`)
}

// IsValid reports whether key fully matches any pattern, stopping at the first hit
func (v *Validator) IsValid(key string) bool {
	if v == nil {
		return false
	}
	for _, re := range v.compiled {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// Patterns returns the source text of the active set in order
func (v *Validator) Patterns() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.src...)
}

// Len reports the number of patterns
func (v *Validator) Len() int {
	if v == nil {
		return 0
	}
	return len(v.compiled)
}

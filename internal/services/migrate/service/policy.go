package service

import (
	"formmigrate/internal/services/migrate/domain"
)

// Partition splits keys by v, keeping input order within each side
func Partition(keys []string, v domain.KeyValidator) (valid, invalid []string) {
	for _, k := range keys {
		if v != nil && v.IsValid(k) {
			valid = append(valid, k)
		} else {
			invalid = append(invalid, k)
		}
	}
	return valid, invalid
}

// Processed returns the keys whose record was fetched, in result order
func Processed(results []domain.KeyResult) []string {
	var out []string
	for _, r := range results {
		if r.Outcome.Processed() {
			out = append(out, r.Key)
		}
	}
	return out
}

// DeletionSet decides which keys to remove from the source.
// nil means deletion is disabled and the source must not be touched at all;
// a non-nil empty slice means deletion is enabled but there is nothing to remove
func DeletionSet(listed []string, results []domain.KeyResult, p domain.Policy) []string {
	if !p.DeleteAfterMigration {
		return nil
	}
	if p.DeleteInvalidData {
		return append(make([]string, 0, len(listed)), listed...)
	}
	out := Processed(results)
	if out == nil {
		out = []string{}
	}
	return out
}

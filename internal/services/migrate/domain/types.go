// Package domain holds the data structures and ports of the form data migration
package domain

import (
	"time"
)

// FormData is one stored form submission, kept as the raw JSON object read
// from the source so field order and unknown fields survive the copy
type FormData []byte

// Outcome is what happened to a single valid key
type Outcome uint8

const (
	// Migrated means the record was read and written
	Migrated Outcome = iota + 1
	// Absent means the key was listed but had no record when fetched
	Absent
	// FetchFailed means reading the record failed
	FetchFailed
	// WriteFailed means the record was read but the write failed
	WriteFailed
)

func (o Outcome) String() string {
	switch o {
	case Migrated:
		return "migrated"
	case Absent:
		return "absent"
	case FetchFailed:
		return "fetch_failed"
	case WriteFailed:
		return "write_failed"
	}
	return "unknown"
}

// Processed reports whether the record was fetched, so it counts for deletion.
// A failed write still counts
func (o Outcome) Processed() bool { return o == Migrated || o == WriteFailed }

// KeyResult is the per key outcome of the migrating phase
type KeyResult struct {
	Key     string
	Outcome Outcome
	Err     error
}

// Policy decides what is removed from the source after migration.
// DeleteInvalidData only has an effect together with DeleteAfterMigration
type Policy struct {
	DeleteAfterMigration bool
	DeleteInvalidData    bool
}

// Phase names the stages of a run, used in logs and errors
type Phase string

const (
	PhaseListing   Phase = "listing"
	PhaseFiltering Phase = "filtering"
	PhaseMigrating Phase = "migrating"
	PhaseDeleting  Phase = "deleting"
	PhaseDone      Phase = "done"
)

// Report summarizes a run
type Report struct {
	RunID string

	Listed      int
	Valid       int
	Invalid     int
	Migrated    int
	Absent      int
	FetchFailed int
	WriteFailed int

	DeletionEnabled bool
	Deleted         int
	// DeletedUnwritten lists keys removed from the source although their write failed
	DeletedUnwritten []string

	Results []KeyResult
	Elapsed time.Duration
}

// Processed is the number of keys whose record was fetched
func (r Report) Processed() int { return r.Migrated + r.WriteFailed }

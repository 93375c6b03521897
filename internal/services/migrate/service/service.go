// Package service provides the form data migration runner
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	perr "formmigrate/internal/platform/errors"
	"formmigrate/internal/platform/logger"
	"formmigrate/internal/services/migrate/domain"

	"github.com/google/uuid"
)

// Config holds configuration options for the migration service
type Config struct {
	Policy domain.Policy

	// Workers is the number of keys transferred in parallel; <=0 -> 1
	Workers int

	// LogKeysLimit caps how many invalid keys are printed; <=0 -> all
	LogKeysLimit int

	// Log is the base logger; nil uses the process root
	Log *logger.Logger
}

// Service implements domain.RunnerPort
type Service struct {
	Source    domain.SourceRepo
	Dest      domain.DestRepo
	Validator domain.KeyValidator
	Cfg       Config

	now func() time.Time
}

var _ domain.RunnerPort = (*Service)(nil)

// New constructs the migration service
func New(src domain.SourceRepo, dst domain.DestRepo, v domain.KeyValidator, cfg Config) *Service {
	if src == nil {
		panic("migrate.Service requires a non nil SourceRepo")
	}
	if dst == nil {
		panic("migrate.Service requires a non nil DestRepo")
	}
	if v == nil {
		panic("migrate.Service requires a non nil KeyValidator")
	}
	return &Service{Source: src, Dest: dst, Validator: v, Cfg: cfg, now: time.Now}
}

// Run performs one full pass: list, filter, transfer every valid key, then
// delete from the source according to the policy.
// Per key failures are reported, not returned; only listing, deletion and
// cancellation errors come back as err
func (s *Service) Run(ctx context.Context) (domain.Report, error) {
	if logger.RunID(ctx) == "" {
		ctx = logger.WithRun(ctx, uuid.NewString())
	}
	log := s.logFor(ctx)
	start := s.now()
	rep := domain.Report{RunID: logger.RunID(ctx), DeletionEnabled: s.Cfg.Policy.DeleteAfterMigration}

	log.Info().
		Bool("delete_after_migration", s.Cfg.Policy.DeleteAfterMigration).
		Bool("delete_invalid_data", s.Cfg.Policy.DeleteInvalidData).
		Int("workers", max(s.Cfg.Workers, 1)).
		Msg("start forms data migration")
	if s.Cfg.Policy.DeleteAfterMigration {
		log.Warn().Msg("enabled deleting processed form data from source after migration; keys whose write fails are deleted too")
		if s.Cfg.Policy.DeleteInvalidData {
			log.Warn().Msg("enabled deleting invalid and unprocessed keys from source")
		}
	} else {
		log.Info().Msg("disabled deleting form data from source after migration")
	}

	// listing
	keys, err := s.Source.Keys(ctx)
	if err != nil {
		return s.finish(ctx, rep, start), phaseErr(err, domain.PhaseListing, "list source keys")
	}
	rep.Listed = len(keys)

	// filtering
	valid, invalid := Partition(keys, s.Validator)
	rep.Valid, rep.Invalid = len(valid), len(invalid)
	if len(invalid) > 0 {
		log.Warn().Int("count", len(invalid)).Strs("keys", s.limit(invalid)).Msg("found invalid keys")
	}

	// migrating
	results, err := s.migrateAll(ctx, valid)
	rep.Results = results
	for _, r := range results {
		switch r.Outcome {
		case domain.Migrated:
			rep.Migrated++
		case domain.Absent:
			rep.Absent++
		case domain.FetchFailed:
			rep.FetchFailed++
		case domain.WriteFailed:
			rep.WriteFailed++
		}
	}
	if err == nil {
		// a cancel during the last key still fills every slot
		err = ctx.Err()
	}
	if err != nil {
		// nothing is deleted after an interrupted pass
		return s.finish(ctx, rep, start), phaseErr(err, domain.PhaseMigrating, "migration interrupted")
	}

	// deleting
	del := DeletionSet(keys, results, s.Cfg.Policy)
	if del != nil {
		processed := rep.Processed()
		log.Info().
			Int("count", len(del)).
			Int("processed", processed).
			Int("unprocessed", len(del)-min(processed, len(del))).
			Msg("deleting keys from source")
		if err := s.Source.Delete(ctx, del); err != nil {
			return s.finish(ctx, rep, start), phaseErr(err, domain.PhaseDeleting, "delete source keys")
		}
		rep.Deleted = len(del)
		rep.DeletedUnwritten = unwritten(results)
		if len(rep.DeletedUnwritten) > 0 {
			log.Error().Strs("keys", rep.DeletedUnwritten).Msg("deleted keys from source whose write to destination failed")
		}
	}

	return s.finish(ctx, rep, start), nil
}

// migrateAll transfers keys with a bounded pool and returns results in key order.
// Workers write into their own slot so no result is lost or reordered
func (s *Service) migrateAll(ctx context.Context, keys []string) ([]domain.KeyResult, error) {
	results := make([]domain.KeyResult, len(keys))
	if len(keys) == 0 {
		return results, nil
	}
	w := min(max(s.Cfg.Workers, 1), len(keys))

	var next int64 = -1
	var wg sync.WaitGroup
	var done int64

	worker := func() {
		defer wg.Done()
		for {
			if ctx.Err() != nil {
				return
			}
			i := int(atomic.AddInt64(&next, 1))
			if i >= len(keys) {
				return
			}
			results[i] = s.migrateOne(ctx, keys[i])
			atomic.AddInt64(&done, 1)
		}
	}

	wg.Add(w)
	for i := 0; i < w; i++ {
		go worker()
	}
	wg.Wait()

	if n := int(atomic.LoadInt64(&done)); n < len(keys) {
		return compact(results), ctx.Err()
	}
	return results, nil
}

// migrateOne fetches and writes a single key; failures stay local to the key
func (s *Service) migrateOne(ctx context.Context, key string) domain.KeyResult {
	kctx := logger.WithKey(ctx, key)
	log := s.logFor(kctx)
	log.Info().Msg("migration for key started")

	fd, ok, err := s.Source.Get(kctx, key)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("failed to fetch form data from source")
		return domain.KeyResult{Key: key, Outcome: domain.FetchFailed, Err: err}
	case !ok:
		log.Warn().Msg("key not found in source storage")
		return domain.KeyResult{Key: key, Outcome: domain.Absent}
	}

	if err := s.Dest.Put(kctx, key, fd); err != nil {
		log.Error().Err(err).Msg("failed to write form data to destination")
		return domain.KeyResult{Key: key, Outcome: domain.WriteFailed, Err: err}
	}
	log.Info().Str("outcome", domain.Migrated.String()).Msg("migration for key finished")
	return domain.KeyResult{Key: key, Outcome: domain.Migrated}
}

func (s *Service) finish(ctx context.Context, rep domain.Report, start time.Time) domain.Report {
	rep.Elapsed = s.now().Sub(start)
	s.logFor(ctx).Info().
		Int("listed", rep.Listed).
		Int("valid", rep.Valid).
		Int("invalid", rep.Invalid).
		Int("migrated", rep.Migrated).
		Int("absent", rep.Absent).
		Int("fetch_failed", rep.FetchFailed).
		Int("write_failed", rep.WriteFailed).
		Int("deleted", rep.Deleted).
		Dur("elapsed", rep.Elapsed).
		Msg("forms data migration finished")
	return rep
}

func (s *Service) logFor(ctx context.Context) *logger.Logger {
	if s.Cfg.Log != nil {
		return logger.From(ctx, *s.Cfg.Log)
	}
	return logger.C(ctx)
}

func (s *Service) limit(keys []string) []string {
	if s.Cfg.LogKeysLimit <= 0 || len(keys) <= s.Cfg.LogKeysLimit {
		return keys
	}
	return keys[:s.Cfg.LogKeysLimit]
}

// phaseErr keeps an existing code (config, unavailable) and tags the phase
func phaseErr(err error, phase domain.Phase, msg string) error {
	code := perr.ErrorCodeSource
	if c := perr.CodeOf(err); c != perr.ErrorCodeUnknown {
		code = c
	}
	return perr.WithOp(perr.Wrap(err, code, msg), string(phase))
}

func unwritten(results []domain.KeyResult) []string {
	var out []string
	for _, r := range results {
		if r.Outcome == domain.WriteFailed {
			out = append(out, r.Key)
		}
	}
	return out
}

// compact drops slots never filled because the run was canceled
func compact(results []domain.KeyResult) []domain.KeyResult {
	out := results[:0]
	for _, r := range results {
		if r.Outcome != 0 {
			out = append(out, r)
		}
	}
	return out
}

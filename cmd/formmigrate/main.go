package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"formmigrate/internal/core/version"
	"formmigrate/internal/modkit"
	"formmigrate/internal/modkit/module"
	"formmigrate/internal/platform/config"
	"formmigrate/internal/platform/logger"
	"formmigrate/internal/platform/store"

	migratedom "formmigrate/internal/services/migrate/domain"
	migratemod "formmigrate/internal/services/migrate/module"

	"github.com/google/uuid"
)

// seam for tests
var openStore = store.Open

func main() {
	f, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if f.version {
		fmt.Println(version.Info())
		return
	}

	// env file first so LOG_* is visible to the logger
	loaded, envErr := config.LoadDotEnv(f.envFile)

	l := logger.Get()
	if envErr != nil {
		l.Fatal().Err(envErr).Str("path", f.envFile).Msg("load env file failed")
	}
	if len(loaded) > 0 {
		l.Debug().Strs("files", loaded).Msg("env loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f, l); err != nil {
		stop()
		l.Fatal().Err(err).Msg("migration failed")
	}
}

// run opens the stores, builds the migrate module and runs it once
func run(ctx context.Context, f *cliFlags, l *logger.Logger) error {
	root := config.New()

	opts := f.apply(migratemod.FromConfig(root))
	if err := opts.Validate(); err != nil {
		return err
	}

	st, err := openStore(ctx, storeConfig(root), store.WithLogger(*logger.Named("store")))
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// both ends must still answer right before keys start moving
	if err := st.Guard(ctx); err != nil {
		return err
	}

	deps := modkit.Deps{
		Cfg:   root,
		Store: st,
		Log:   *logger.Named("migrate"),
	}
	mm, err := migratemod.New(deps, opts)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)

	rep, err := module.MustPortsOf[migratedom.RunnerPort](mm).Run(ctx)
	if err != nil {
		return err
	}
	l.Info().
		Str("run_id", rep.RunID).
		Int("processed", rep.Processed()).
		Int("deleted", rep.Deleted).
		Bool("per_key_failures", rep.FetchFailed+rep.WriteFailed > 0).
		Msg("formmigrate done")
	return nil
}

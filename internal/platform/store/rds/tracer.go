package rds

import (
	"context"
	"errors"
	"net"
	"time"

	"formmigrate/internal/platform/logger"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Tracer returns a hook that logs every command when LOG_COMMANDS is on,
// independent of the process-wide root level. Values are never logged, only
// the command name and its key
func Tracer(root logger.Logger, slow time.Duration) redis.Hook {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "redis").Logger()
	return &zlTracer{log: ll, slow: slow, now: time.Now}
}

type zlTracer struct {
	log  logger.Logger
	slow time.Duration
	now  func() time.Time
}

var _ redis.Hook = (*zlTracer)(nil)

func (z *zlTracer) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		evt := z.log.Debug()
		if err != nil {
			evt = z.log.Warn()
		}
		evt.Str("addr", addr).Err(err).Msg("redis dial")
		return conn, err
	}
}

func (z *zlTracer) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := z.now()
		err := next(ctx, cmd)
		z.emit(cmd.Name(), cmdKey(cmd), 1, z.now().Sub(start), err)
		return err
	}
}

func (z *zlTracer) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := z.now()
		err := next(ctx, cmds)
		name := "pipeline"
		key := ""
		if len(cmds) > 0 {
			name = cmds[0].Name()
			key = cmdKey(cmds[0])
		}
		z.emit(name, key, len(cmds), z.now().Sub(start), err)
		return err
	}
}

func (z *zlTracer) emit(name, key string, n int, elapsed time.Duration, err error) {
	// a miss is an answer, not a failure
	if errors.Is(err, redis.Nil) {
		err = nil
	}
	slow := z.slow > 0 && elapsed >= z.slow
	evt := z.log.Info()
	if slow || err != nil {
		evt = z.log.Warn()
	}
	evt.Str("cmd", name).
		Str("redis_key", key).
		Int("cmds", n).
		Float64("elapsed_ms", float64(elapsed.Microseconds())/1000.0).
		Bool("slow", slow).
		Err(err).
		Msg("redis command")
}

// cmdKey returns the first argument after the command name when it is a string
func cmdKey(cmd redis.Cmder) string {
	args := cmd.Args()
	if len(args) < 2 {
		return ""
	}
	s, _ := args[1].(string)
	return s
}

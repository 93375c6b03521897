package rds

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type logLine struct {
	Level     string  `json:"level"`
	Cmd       string  `json:"cmd"`
	Key       string  `json:"redis_key"`
	Cmds      int     `json:"cmds"`
	ElapsedMS float64 `json:"elapsed_ms"`
	Slow      bool    `json:"slow"`
	Error     string  `json:"error"`
	Message   string  `json:"message"`
	Component string  `json:"component"`
}

func newTestTracer(buf *bytes.Buffer, slow time.Duration, step time.Duration) *zlTracer {
	tr := Tracer(zerolog.New(buf), slow).(*zlTracer)
	base := time.Unix(0, 0)
	calls := 0
	tr.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * step)
	}
	return tr
}

func decode(t *testing.T, buf *bytes.Buffer) logLine {
	t.Helper()
	var l logLine
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &l); err != nil {
		t.Fatalf("unmarshal: %v\nraw=%s", err, buf.String())
	}
	return l
}

func TestTracer_ProcessHook_Info(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := newTestTracer(&buf, time.Second, 2*time.Millisecond)

	ctx := context.Background()
	cmd := redis.NewStatusCmd(ctx, "set", "process/1/task/a", `{"secret":"value"}`)
	h := tr.ProcessHook(func(context.Context, redis.Cmder) error { return nil })
	if err := h(ctx, cmd); err != nil {
		t.Fatalf("hook returned %v", err)
	}

	l := decode(t, &buf)
	if l.Level != "info" || l.Cmd != "set" || l.Key != "process/1/task/a" || l.Cmds != 1 {
		t.Fatalf("unexpected line %+v", l)
	}
	if l.ElapsedMS != 2 || l.Slow {
		t.Fatalf("timing wrong %+v", l)
	}
	if l.Component != "redis" || l.Message != "redis command" {
		t.Fatalf("labels wrong %+v", l)
	}
	if strings.Contains(buf.String(), "secret") {
		t.Fatalf("payload leaked into log: %s", buf.String())
	}
}

func TestTracer_ProcessHook_SlowAndError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := newTestTracer(&buf, time.Millisecond, 5*time.Millisecond)

	boom := errors.New("READONLY replica")
	h := tr.ProcessHook(func(context.Context, redis.Cmder) error { return boom })
	err := h(context.Background(), redis.NewStatusCmd(context.Background(), "set", "k", "v"))
	if !errors.Is(err, boom) {
		t.Fatalf("hook must pass error through, got %v", err)
	}
	l := decode(t, &buf)
	if l.Level != "warn" || !l.Slow || l.Error != "READONLY replica" {
		t.Fatalf("unexpected line %+v", l)
	}
}

func TestTracer_NilIsNotAnError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := newTestTracer(&buf, 0, time.Microsecond)

	h := tr.ProcessHook(func(context.Context, redis.Cmder) error { return redis.Nil })
	if err := h(context.Background(), redis.NewStringCmd(context.Background(), "get", "k")); !errors.Is(err, redis.Nil) {
		t.Fatalf("redis.Nil must still reach the caller")
	}
	l := decode(t, &buf)
	if l.Level != "info" || l.Error != "" {
		t.Fatalf("miss logged as failure: %+v", l)
	}
}

func TestTracer_PipelineHook(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := newTestTracer(&buf, 0, time.Millisecond)

	ctx := context.Background()
	cmds := []redis.Cmder{
		redis.NewStatusCmd(ctx, "set", "a", "1"),
		redis.NewStatusCmd(ctx, "set", "b", "2"),
	}
	h := tr.ProcessPipelineHook(func(context.Context, []redis.Cmder) error { return nil })
	if err := h(ctx, cmds); err != nil {
		t.Fatalf("pipeline hook: %v", err)
	}
	l := decode(t, &buf)
	if l.Cmds != 2 || l.Cmd != "set" || l.Key != "a" {
		t.Fatalf("unexpected pipeline line %+v", l)
	}
}

func TestCmdKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := cmdKey(redis.NewStatusCmd(ctx, "ping")); got != "" {
		t.Fatalf("ping has no key, got %q", got)
	}
	if got := cmdKey(redis.NewIntCmd(ctx, "del", "x", "y")); got != "x" {
		t.Fatalf("cmdKey = %q", got)
	}
}

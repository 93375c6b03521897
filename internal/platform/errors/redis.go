package errors

import (
	"context"
	stderrs "errors"
	"io"
	"net"
	"strings"

	"github.com/redis/go-redis/v9"
)

// redisAuthPrefixes are server replies that mean the credentials were rejected
var redisAuthPrefixes = []string{"NOAUTH", "WRONGPASS", "NOPERM"}

// redisBusyPrefixes are server replies that mean the node cannot serve writes right now
var redisBusyPrefixes = []string{"LOADING", "READONLY", "MASTERDOWN", "CLUSTERDOWN", "TRYAGAIN"}

func isRedisNil(err error) bool { return stderrs.Is(err, redis.Nil) }

// FromRedis converts a go-redis error into an *Error with a stable code.
// op is attached as the operation label. Returns nil for nil input
func FromRedis(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return WithOp(err, op)
	}

	var code ErrorCode
	switch {
	case isRedisNil(err):
		code = ErrorCodeNotFound
	case isNetErr(err):
		code = ErrorCodeUnavailable
	case hasReplyPrefix(err, redisAuthPrefixes):
		code = ErrorCodeUnauthorized
	case hasReplyPrefix(err, redisBusyPrefixes):
		code = ErrorCodeUnavailable
	default:
		code = ErrorCodeDestination
	}
	return WithOp(Wrap(err, code, "redis"), op)
}

// isNetErr reports transport level failures shared by every backend client
func isNetErr(err error) bool {
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(err, io.EOF) || stderrs.Is(err, net.ErrClosed) {
		return true
	}
	var ne net.Error
	if stderrs.As(err, &ne) {
		return true
	}
	var oe *net.OpError
	return stderrs.As(err, &oe)
}

func hasReplyPrefix(err error, prefixes []string) bool {
	msg := err.Error()
	for _, p := range prefixes {
		if strings.HasPrefix(msg, p) {
			return true
		}
	}
	return false
}

package command

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/reactive/core/logger"
	"github.com/dmitrymomot/reactive/pkg/signal"
)

// sink collects every caught failure of a command into a multicast error
// stream. Publishing never fails the caller: observer panics are recovered
// by the stream, and a fault nobody observes falls through to an optional
// fallback handler instead of disappearing silently.
type sink struct {
	stream   *signal.Stream[error]
	logger   *slog.Logger
	fallback func(error)
}

func newSink(logger *slog.Logger, fallback func(error), opts ...signal.Option) *sink {
	return &sink{
		stream:   signal.NewStream[error](opts...),
		logger:   logger,
		fallback: fallback,
	}
}

// publish routes err to the error stream. Errors wrapped by suppressReport
// were already reported once and are dropped to avoid double-reporting.
//
// The fallback path fires only when nobody observes the stream at all. A
// channel subscriber counts as an observer even when its buffer is full and
// the fault is dropped for it; consumers that must not miss faults should
// use Observe rather than a channel subscription.
func (s *sink) publish(err error) {
	if err == nil {
		return
	}
	var silent *silentError
	if errors.As(err, &silent) {
		return
	}

	delivered := s.stream.Publish(err)
	if delivered > 0 {
		return
	}
	if s.fallback != nil {
		s.fallback(err)
		return
	}
	s.logger.Warn("unobserved command fault", logger.Error(err))
}

// errorStream returns the multicast fault stream.
func (s *sink) errorStream() *signal.Stream[error] {
	return s.stream
}

// silentError marks a failure as already reported through a sink, so it can
// travel to awaiters of an invocation without being published twice.
type silentError struct {
	err error
}

func (e *silentError) Error() string { return e.err.Error() }

func (e *silentError) Unwrap() error { return e.err }

// suppressReport wraps err so sinks skip it.
func suppressReport(err error) error {
	if err == nil {
		return nil
	}
	return &silentError{err: err}
}

// unwrapSilent strips a suppressReport wrapper, if any.
func unwrapSilent(err error) error {
	var silent *silentError
	if errors.As(err, &silent) {
		return silent.err
	}
	return err
}

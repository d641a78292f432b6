package command

import (
	"log/slog"

	"github.com/dmitrymomot/reactive/pkg/scheduler"
	"github.com/dmitrymomot/reactive/pkg/signal"
)

// Option configures a Command.
type Option[P, R any] func(*Command[P, R])

// WithName overrides the command name used in logs and error messages.
// By default the name is derived from the parameter type.
func WithName[P, R any](name string) Option[P, R] {
	return func(c *Command[P, R]) {
		if name != "" {
			c.name = name
		}
	}
}

// WithCanExecute supplies an external permission signal. The command may run
// only while the signal is true and no execution is in flight.
//
// Example:
//
//	loggedIn := signal.New(false)
//	cmd := command.New(submit, command.WithCanExecute[Form, Receipt](loggedIn))
func WithCanExecute[P, R any](src *signal.Signal[bool]) Option[P, R] {
	return func(c *Command[P, R]) {
		if src != nil {
			c.sourceSig = src
		}
	}
}

// WithCanExecuteFunc supplies a fallible permission source, re-evaluated by
// Invalidate. An error from the source disables the command for that
// evaluation and is routed to Errors; it never crashes the command.
func WithCanExecuteFunc[P, R any](fn CanExecuteFunc) Option[P, R] {
	return func(c *Command[P, R]) {
		if fn != nil {
			c.sourceFn = fn
		}
	}
}

// WithScheduler sets the output context on which all of the command's
// observer notifications (can-execute, is-executing, results, errors) are
// delivered. Default is scheduler.Immediate. Pass a scheduler.Serial to get
// single-threaded, UI-style delivery.
func WithScheduler[P, R any](s scheduler.Scheduler) Option[P, R] {
	return func(c *Command[P, R]) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithLogger sets the logger for the command.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging;
// that is also the default.
func WithLogger[P, R any](logger *slog.Logger) Option[P, R] {
	return func(c *Command[P, R]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFaultHandler sets a fallback for faults published while nobody
// observes Errors. Without it such faults are only logged. This is the
// injectable replacement for a process-wide default exception handler.
func WithFaultHandler[P, R any](fn func(error)) Option[P, R] {
	return func(c *Command[P, R]) {
		c.faultHandler = fn
	}
}

// WithConfig sets channel buffer sizes. Zero fields fall back to defaults.
//
// Example:
//
//	var cfg command.Config
//	config.MustLoad(&cfg)
//	cmd := command.New(fn, command.WithConfig[Param, Result](cfg))
func WithConfig[P, R any](cfg Config) Option[P, R] {
	return func(c *Command[P, R]) {
		c.cfg = cfg.normalize()
	}
}

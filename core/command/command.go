package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reactive/core/logger"
	"github.com/dmitrymomot/reactive/pkg/async"
	"github.com/dmitrymomot/reactive/pkg/scheduler"
	"github.com/dmitrymomot/reactive/pkg/signal"
)

// ExecuteFunc is the user-supplied logic of a command: parameter in,
// result or error out. It runs on its own goroutine per invocation and
// should respect context cancellation for cooperative cancel.
type ExecuteFunc[P, R any] func(context.Context, P) (R, error)

// CanExecuteFunc is a fallible permission source. An error disables the
// command for that evaluation and is routed to Errors.
type CanExecuteFunc func(context.Context) (bool, error)

// Command turns a function into an asynchronous, observable, cancellation-
// aware unit of work. It tracks in-flight executions, gates executability on
// external permission and busy state, multicasts results, and contains every
// failure: a failing execution never crashes sibling executions, observers,
// or the process.
//
// Example:
//
//	double := command.New(func(ctx context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//
//	inv := double.Execute(ctx, 21)
//	v, err := inv.Await() // 42, nil
//
// Observing state:
//
//	cancel := double.CanExecute().Observe(func(ok bool) { button.SetEnabled(ok) })
//	defer cancel()
type Command[P, R any] struct {
	fn      ExecuteFunc[P, R]
	name    string
	tracker *tracker
	gate    *gate
	sink    *sink
	results *signal.Stream[R]
	pullSig *signal.Signal[bool]

	logger       *slog.Logger
	sched        scheduler.Scheduler
	cfg          Config
	sourceSig    *signal.Signal[bool]
	sourceFn     CanExecuteFunc
	faultHandler func(error)

	disposed     atomic.Bool
	extraCancels []func()
}

// New creates a command from fn. Panics if fn is nil; everything else is
// optional.
//
// Example:
//
//	cmd := command.New(saveDocument,
//	    command.WithCanExecute[Document, Revision](dirty),
//	    command.WithLogger[Document, Revision](logger),
//	)
func New[P, R any](fn ExecuteFunc[P, R], opts ...Option[P, R]) *Command[P, R] {
	return newCommand(fn, nil, opts...)
}

// newCommand builds a command with optional extra gate sources. Combine uses
// the extra sources to AND child executability into the combined gate.
func newCommand[P, R any](fn ExecuteFunc[P, R], extraSources []*signal.Signal[bool], opts ...Option[P, R]) *Command[P, R] {
	if fn == nil {
		panic("command: execute function is required")
	}

	c := &Command[P, R]{
		fn:     fn,
		name:   parameterName[P](),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		sched:  scheduler.Immediate{},
		cfg:    DefaultConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}

	sigOpts := []signal.Option{
		signal.WithScheduler(c.sched),
		signal.WithSubscriberBuffer(c.cfg.SignalBuffer),
	}

	c.tracker = newTracker(sigOpts...)
	c.results = signal.NewStream[R](
		signal.WithScheduler(c.sched),
		signal.WithSubscriberBuffer(c.cfg.ResultBuffer),
	)
	c.sink = newSink(c.logger, c.faultHandler,
		signal.WithScheduler(c.sched),
		signal.WithSubscriberBuffer(c.cfg.ErrorBuffer),
	)

	sources := make([]*signal.Signal[bool], 0, len(extraSources)+2)
	if c.sourceSig != nil {
		sources = append(sources, c.sourceSig)
	}
	if c.sourceFn != nil {
		c.pullSig = signal.New(true, sigOpts...)
		sources = append(sources, c.pullSig)
	}
	sources = append(sources, extraSources...)

	c.gate = newGate(c.tracker.executing(), sources, sigOpts...)

	if c.sourceFn != nil {
		c.evaluateSource(context.Background())
	}
	return c
}

// Name returns the command name used in logs and error messages.
func (c *Command[P, R]) Name() string {
	return c.name
}

// Execute starts one asynchronous execution with param and returns its
// invocation handle. Begin is recorded synchronously before any user code
// runs; completion is recorded exactly once when the function settles,
// succeeds, fails, or panics.
//
// Execute bypasses the executability gate: calling it while CanExecute is
// false still runs. Gate-driven triggers (Bridge, adapter listeners) are the
// ones that honor the gate. Concurrent invocations are unbounded;
// IsExecuting reflects the in-flight count, not a single flag.
//
// A failure is routed to Errors and rejects this invocation's handle only.
// The command keeps working for subsequent Execute calls.
func (c *Command[P, R]) Execute(ctx context.Context, param P) *Invocation[R] {
	if ctx == nil {
		ctx = context.Background()
	}

	id := uuid.New().String()

	if c.disposed.Load() {
		err := fmt.Errorf("%w: %s", ErrCommandDisposed, c.name)
		c.sink.publish(err)
		var zero R
		return &Invocation[R]{id: id, future: async.Completed(zero, err), cancel: func() {}}
	}

	invCtx, cancel := context.WithCancel(ctx)
	invCtx = WithInvocationID(invCtx, id)
	invCtx = WithCommandName(invCtx, c.name)
	invCtx = WithInvocationTime(invCtx, time.Now())

	c.tracker.begin()

	// The future's own context is never cancelled so the wrapped function
	// always runs and the end marker is always recorded; cancellation is
	// cooperative through invCtx.
	fut := async.Async(context.Background(), param, func(_ context.Context, p P) (R, error) {
		defer cancel()
		defer c.tracker.end()

		r, err := c.invoke(invCtx, p)
		if err != nil {
			c.sink.publish(err)
			return r, unwrapSilent(err)
		}
		c.results.Publish(r)
		return r, nil
	})

	return &Invocation[R]{id: id, future: fut, cancel: cancel}
}

// ExecuteDefault is Execute with the zero value of the parameter type.
func (c *Command[P, R]) ExecuteDefault(ctx context.Context) *Invocation[R] {
	var zero P
	return c.Execute(ctx, zero)
}

// invoke runs the user function with panic recovery: a panic becomes an
// error instead of tearing down the process.
func (c *Command[P, R]) invoke(ctx context.Context, param P) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command %s panicked: %v", c.name, r)
			c.logger.Error("command execution panicked",
				logger.Command(c.name),
				logger.InvocationID(InvocationID(ctx)),
				logger.InFlight(c.tracker.inFlight()),
				logger.Panic(r))
		}
	}()
	return c.fn(ctx, param)
}

// CanExecute returns the executability signal: true iff every permission
// source allows the command and no execution is in flight. Hot, shared,
// deduplicated, replays its latest value to new observers.
func (c *Command[P, R]) CanExecute() *signal.Signal[bool] {
	return c.gate.canExecute()
}

// IsExecuting returns the busy signal: true iff at least one execution is in
// flight. Hot, shared, deduplicated, replays its latest value.
func (c *Command[P, R]) IsExecuting() *signal.Signal[bool] {
	return c.tracker.executing()
}

// InFlight returns the current number of not-yet-completed executions.
func (c *Command[P, R]) InFlight() int {
	return c.tracker.inFlight()
}

// Errors returns the multicast stream of every caught failure: execution
// errors, recovered panics, and can-execute source failures. Faults are
// contained and never terminate the command, so an application that
// cares about them must observe this stream (or install WithFaultHandler).
func (c *Command[P, R]) Errors() *signal.Stream[error] {
	return c.sink.errorStream()
}

// Results returns the multicast stream receiving one value per successful
// execution. Failed executions never emit here.
func (c *Command[P, R]) Results() *signal.Stream[R] {
	return c.results
}

// Invalidate re-evaluates the can-execute source supplied via
// WithCanExecuteFunc. No-op for commands without one.
func (c *Command[P, R]) Invalidate(ctx context.Context) {
	if c.sourceFn == nil || c.disposed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.evaluateSource(ctx)
}

func (c *Command[P, R]) evaluateSource(ctx context.Context) {
	allowed, err := c.safeSource(ctx)
	if err != nil {
		c.sink.publish(fmt.Errorf("%w: %w", ErrCanExecuteSource, err))
		allowed = false
	}
	c.pullSig.Set(allowed)
}

// safeSource evaluates the can-execute source with panic recovery.
func (c *Command[P, R]) safeSource(ctx context.Context) (allowed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			allowed = false
			err = fmt.Errorf("panicked: %v", r)
		}
	}()
	return c.sourceFn(ctx)
}

// Dispose releases the command's subscriptions and stops gate-driven
// invocations: CanExecute pins to false and subsequent Execute calls fail
// with ErrCommandDisposed. Executions already in flight run to completion
// unless cancelled explicitly. Dispose is idempotent.
func (c *Command[P, R]) Dispose() {
	if !c.disposed.CompareAndSwap(false, true) {
		return
	}
	c.gate.release()
	for _, cancel := range c.extraCancels {
		cancel()
	}
	c.extraCancels = nil
}

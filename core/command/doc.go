// Package command provides a reactive command execution engine: it turns an
// arbitrary function into an asynchronous, observable, cancellation-aware
// unit of work with coordinated executability.
//
// A command wraps user logic `func(ctx, P) (R, error)` and exposes four
// derived channels: CanExecute and IsExecuting (hot, deduplicated,
// replay-latest boolean signals), Results (one value per successful
// execution), and Errors (every caught failure). Commands are built for UI
// and automation glue: subscribe to CanExecute to drive enabled/disabled
// widget state, to IsExecuting to drive busy indicators, trigger Execute
// from events, and observe Errors instead of writing try/catch at every
// call site.
//
// # Quick Start
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
//	stop := double.IsExecuting().Observe(func(busy bool) {
//	    spinner.SetVisible(busy)
//	})
//	defer stop()
//
// # Executability
//
// CanExecute is the AND of every permission source and "not currently
// executing". Permission comes from a push signal (WithCanExecute) or a
// fallible pull source (WithCanExecuteFunc, re-evaluated via Invalidate).
// A failing pull source disables the command for that evaluation and
// reports through Errors; it never crashes the command.
//
// Execute itself bypasses the gate: application code that calls Execute
// directly is trusted, and overlapping invocations are allowed (IsExecuting
// reflects the in-flight count). The gate governs the gate-driven triggers:
// Bridge drops source values while CanExecute is false, and adapter-driven
// hosts are expected to consult CanExecute before triggering.
//
// # Invocations
//
// Each Execute call returns an Invocation: a shared handle that any number
// of goroutines can await while the underlying function runs exactly once.
// The work runs regardless of whether anyone awaits it. Cancellation is
// cooperative and per-invocation: Invocation.Cancel cancels only that
// invocation's context, and the completion marker is still recorded exactly
// once.
//
// # Fault containment
//
// Every failure, whether an error returned by the function, a panic inside
// it, or a failing can-execute source, is caught, routed to Errors, and
// contained:
// it rejects only its own invocation handle and never tears down sibling
// invocations, observers, or the process. Unobserved faults fall through to
// the WithFaultHandler hook when installed, and are otherwise logged.
//
//	stop := cmd.Errors().Observe(func(err error) {
//	    toast.ShowError(err)
//	})
//	defer stop()
//
// # Combining commands
//
// Combine composes child commands into one unit with a joint gate (own
// permission AND every child's CanExecute) and a joint result (child results
// joined positionally once all children settle). A failing child does not
// stop its siblings and is reported exactly once on the combined Errors.
//
//	refreshAll := command.Combine([]*command.Command[struct{}, Report]{
//	    refreshInbox, refreshCalendar, refreshContacts,
//	})
//
// # Triggering from event sources
//
// Bridge wires a channel of values to a command, reading CanExecute fresh
// for each value and dropping values while the command is busy or forbidden:
//
//	bridge := command.NewBridge(clicks, selectTile)
//	defer bridge.Stop()
//
// Adapter exposes the classic synchronous CanExecute/Execute pair plus an
// executability-changed callback for toolkits that poll imperatively:
//
//	adapter := command.NewAdapter(saveCmd)
//	cancel := adapter.OnCanExecuteChanged(func(ok bool) { btn.SetEnabled(ok) })
//	defer cancel()
//
// # Decorators
//
// The engine imposes no timeout or retry policy. Compose decorators around
// the execute function instead:
//
//	fn := command.ApplyDecorators(
//	    callAPI,
//	    command.WithTimeout[Request, Response](30*time.Second),
//	    command.WithRetry[Request, Response](3),
//	)
//	cmd := command.New(fn)
//
// # Delivery contexts
//
// Observer notifications are delivered on the command's scheduler. The
// default (scheduler.Immediate) delivers synchronously on the goroutine
// that produced the change, which keeps tests deterministic. Pass a
// scheduler.Serial to serialize all notifications onto one goroutine, the
// way a UI thread would:
//
//	ui := scheduler.NewSerial()
//	defer ui.Stop()
//	cmd := command.New(fn, command.WithScheduler[P, R](ui))
//
// # Disposal
//
// Dispose releases the command's subscriptions, pins CanExecute to false,
// and fails subsequent Execute calls with ErrCommandDisposed. In-flight
// executions run to completion unless cancelled explicitly. Disposing a
// combined command never disposes its children; they may be shared.
//
// # Contract violations
//
// Programmer errors fail fast at the call site instead of flowing through
// Errors: New panics on a nil function, Combine panics on an empty child
// list, and Adapter.Execute returns ErrInvalidParameterType for a parameter
// of the wrong dynamic type.
package command

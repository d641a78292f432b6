package command

import (
	"context"
	"fmt"
)

// Adapter exposes a command through the classic synchronous
// can-execute/execute pair for hosts that cannot consume signals directly,
// such as legacy UI toolkits that poll and trigger imperatively.
//
// Example:
//
//	adapter := command.NewAdapter(saveCmd)
//
//	cancel := adapter.OnCanExecuteChanged(func(ok bool) { menuItem.SetEnabled(ok) })
//	defer cancel()
//
//	if adapter.CanExecute(nil) {
//	    _ = adapter.Execute(doc)
//	}
type Adapter[P, R any] struct {
	cmd *Command[P, R]
}

// NewAdapter wraps cmd in a synchronous boundary object.
func NewAdapter[P, R any](cmd *Command[P, R]) *Adapter[P, R] {
	return &Adapter[P, R]{cmd: cmd}
}

// CanExecute returns the last known value of the command's executability
// gate. It never blocks; the parameter is accepted for interface
// compatibility and does not influence the gate.
func (a *Adapter[P, R]) CanExecute(_ any) bool {
	return a.cmd.CanExecute().Value()
}

// Execute coerces param and triggers the underlying asynchronous execution,
// discarding the invocation handle; failures still flow through the
// command's Errors stream. A nil param becomes the zero value of the
// parameter type. A non-nil param of the wrong type fails fast with
// ErrInvalidParameterType.
func (a *Adapter[P, R]) Execute(param any) error {
	p, err := coerceParameter[P](param)
	if err != nil {
		return fmt.Errorf("%w: command %s", err, a.cmd.Name())
	}
	a.cmd.Execute(context.Background(), p)
	return nil
}

// OnCanExecuteChanged registers a listener notified with the current gate
// value immediately and on every change. The returned function cancels the
// registration.
func (a *Adapter[P, R]) OnCanExecuteChanged(fn func(bool)) (cancel func()) {
	return a.cmd.CanExecute().Observe(fn)
}

func coerceParameter[P any](param any) (P, error) {
	var zero P
	if param == nil {
		return zero, nil
	}
	p, ok := param.(P)
	if !ok {
		return zero, fmt.Errorf("%w: expected %T, got %T", ErrInvalidParameterType, zero, param)
	}
	return p, nil
}

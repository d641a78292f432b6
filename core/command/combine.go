package command

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrymomot/reactive/pkg/signal"
)

// Combine composes child commands into one command executed as a unit.
//
// Executability is the AND of the combined command's own permission sources,
// every child's CanExecute, and its own not-busy state. Execute fans the
// parameter out to every child in the given order and joins their results
// positionally into a []R once all children have settled; a failing child
// does not stop its siblings.
//
// Child failures surface on the combined command's Errors exactly once
// (merged from the children's own error streams) and reject the combined
// invocation. Disposing the combined command releases its own subscriptions
// only; children may be shared elsewhere and are never disposed here.
//
// Combine panics if children is empty.
//
// Example:
//
//	all := command.Combine([]*command.Command[Form, Receipt]{save, notify, audit})
//
//	inv := all.Execute(ctx, form)
//	receipts, err := inv.Await() // [saveReceipt, notifyReceipt, auditReceipt]
func Combine[P, R any](children []*Command[P, R], opts ...Option[P, []R]) *Command[P, []R] {
	if len(children) == 0 {
		panic(fmt.Sprintf("command: %s", ErrNoChildCommands))
	}

	kids := slices.Clone(children)

	childGates := make([]*signal.Signal[bool], len(kids))
	for i, child := range kids {
		childGates[i] = child.CanExecute()
	}

	combined := newCommand(func(ctx context.Context, param P) ([]R, error) {
		invocations := make([]*Invocation[R], len(kids))
		for i, child := range kids {
			invocations[i] = child.Execute(ctx, param)
		}

		results := make([]R, len(invocations))
		errs := make([]error, len(invocations))
		for i, inv := range invocations {
			results[i], errs[i] = inv.Await()
		}

		if joined := errors.Join(errs...); joined != nil {
			// Children already reported these on their own error streams,
			// which are merged into ours below. Reporting again here would
			// double-fault.
			return results, suppressReport(fmt.Errorf("%w: %w", ErrChildCommandFailed, joined))
		}
		return results, nil
	}, childGates, opts...)

	for _, child := range kids {
		cancel := child.Errors().Observe(func(err error) {
			combined.sink.publish(err)
		})
		combined.extraCancels = append(combined.extraCancels, cancel)
	}

	return combined
}

package command

import (
	"context"
	"time"

	"github.com/dmitrymomot/reactive/pkg/async"
)

// Invocation is the shared handle for one Execute call. The underlying
// function runs exactly once; any number of goroutines may await the same
// invocation and all observe the identical single result.
type Invocation[R any] struct {
	id     string
	future *async.Future[R]
	cancel context.CancelFunc
}

// ID returns the unique identifier of this invocation. The same ID is
// available inside the execute function via InvocationID(ctx).
func (inv *Invocation[R]) ID() string {
	return inv.id
}

// Await blocks until the invocation settles and returns its result.
func (inv *Invocation[R]) Await() (R, error) {
	return inv.future.Await()
}

// AwaitWithTimeout blocks until the invocation settles or the timeout
// elapses, returning async.ErrTimeout in the latter case. A timeout does not
// cancel the invocation.
func (inv *Invocation[R]) AwaitWithTimeout(timeout time.Duration) (R, error) {
	return inv.future.AwaitWithTimeout(timeout)
}

// Done returns a channel closed when the invocation settles.
func (inv *Invocation[R]) Done() <-chan struct{} {
	return inv.future.Done()
}

// IsComplete reports whether the invocation has settled, without blocking.
func (inv *Invocation[R]) IsComplete() bool {
	return inv.future.IsComplete()
}

// Cancel requests cooperative cancellation of this invocation only: the
// invocation's context is cancelled and the execute function decides how to
// wind down. Other in-flight invocations of the same command are unaffected,
// and the command still records completion exactly once.
func (inv *Invocation[R]) Cancel() {
	inv.cancel()
}

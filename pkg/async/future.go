package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation that produces
// a value of type U or an error. A future completes exactly once.
type Future[U any] struct {
	value U
	err   error
	once  sync.Once
	done  chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// Returns the result if the function completes before the timeout.
// If the timeout occurs before completion, returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
// Returns true if the function has completed, false otherwise.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the future completes.
// Useful for select-based coordination.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// complete resolves the future exactly once. Later calls are no-ops.
func (f *Future[U]) complete(value U, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Async executes a function asynchronously.
// The function accepts a context.Context and a parameter of any type T, and
// returns a value of type U and an error.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		// Early exit prevents goroutine leak when context is pre-canceled
		select {
		case <-ctx.Done():
			var zero U
			f.complete(zero, ctx.Err())
			return
		default:
		}

		value, err := fn(ctx, param)
		f.complete(value, err)
	}()

	return f
}

// Completed returns an already-completed future holding the given result.
// Useful for fast-failure paths that must still hand back a future.
func Completed[U any](value U, err error) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	f.complete(value, err)
	return f
}

// WaitAll waits for all futures to complete and returns their results in
// argument order. Every future is awaited even when some fail; the returned
// error joins the errors of all failed futures.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	errs := make([]error, len(futures))
	for i, future := range futures {
		results[i], errs[i] = future.Await()
	}
	return results, errors.Join(errs...)
}

// WaitAny waits for any of the futures to complete and returns the index of
// the completed future along with its result.
// Note: This function spawns one goroutine per future. All goroutines will
// complete naturally when their respective futures finish.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	var zero U
	if len(futures) == 0 {
		return -1, zero, ErrNoFutures
	}

	type settled struct {
		index int
		value U
		err   error
	}
	done := make(chan settled, 1)

	for i, future := range futures {
		go func(index int, f *Future[U]) {
			value, err := f.Await()
			select {
			case done <- settled{index, value, err}:
			default:
				// Another future already won the race.
			}
		}(i, future)
	}

	res := <-done
	return res.index, res.value, res.err
}

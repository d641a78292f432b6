package command

import (
	"context"
	"fmt"
	"time"
)

// Decorator wraps an execute function to add cross-cutting functionality.
// Decorators compose and are applied before the command is constructed; the
// engine itself imposes no timeout or retry policy.
//
// Example:
//
//	fn := command.ApplyDecorators(
//	    callAPI,
//	    command.WithTimeout[Request, Response](30*time.Second),
//	    command.WithBackoff[Request, Response](5, 100*time.Millisecond, 10*time.Second),
//	)
//	cmd := command.New(fn)
type Decorator[P, R any] func(ExecuteFunc[P, R]) ExecuteFunc[P, R]

// ApplyDecorators applies a series of decorators to an execute function.
// Decorators are applied in the order they are defined: the first decorator
// in the list becomes the outermost wrapper (executes first).
func ApplyDecorators[P, R any](fn ExecuteFunc[P, R], decorators ...Decorator[P, R]) ExecuteFunc[P, R] {
	// Reverse iteration ensures first decorator becomes outermost wrapper
	for i := range len(decorators) {
		fn = decorators[len(decorators)-1-i](fn)
	}
	return fn
}

// WithRetry retries the execute function on errors up to maxRetries times.
// Returns the last error if all retries fail.
func WithRetry[P, R any](maxRetries int) Decorator[P, R] {
	return func(next ExecuteFunc[P, R]) ExecuteFunc[P, R] {
		return func(ctx context.Context, param P) (R, error) {
			var result R
			var lastErr error

			for attempt := 0; attempt <= maxRetries; attempt++ {
				if attempt > 0 {
					if ctx.Err() != nil {
						return result, ctx.Err()
					}
				}

				result, lastErr = next(ctx, param)
				if lastErr == nil {
					return result, nil
				}
			}

			return result, fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
		}
	}
}

// WithBackoff retries the execute function with exponential backoff.
// Waits between retries with exponentially increasing delays, capped at
// maxDelay.
func WithBackoff[P, R any](maxRetries int, initialDelay, maxDelay time.Duration) Decorator[P, R] {
	return func(next ExecuteFunc[P, R]) ExecuteFunc[P, R] {
		return func(ctx context.Context, param P) (R, error) {
			var result R
			var lastErr error
			delay := initialDelay

			for attempt := 0; attempt <= maxRetries; attempt++ {
				if attempt > 0 {
					select {
					case <-ctx.Done():
						return result, ctx.Err()
					case <-time.After(delay):
					}

					// Cap exponential growth to prevent unbounded waits
					delay *= 2
					if delay > maxDelay {
						delay = maxDelay
					}
				}

				result, lastErr = next(ctx, param)
				if lastErr == nil {
					return result, nil
				}
			}

			return result, fmt.Errorf("failed after %d retries with backoff: %w", maxRetries, lastErr)
		}
	}
}

// WithTimeout enforces a maximum execution time on the execute function.
// The function's context is cancelled when the timeout elapses; a function
// that ignores cancellation keeps running on its goroutine, but the caller
// gets the timeout error.
func WithTimeout[P, R any](timeout time.Duration) Decorator[P, R] {
	return func(next ExecuteFunc[P, R]) ExecuteFunc[P, R] {
		return func(ctx context.Context, param P) (R, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			type outcome struct {
				result R
				err    error
			}
			ch := make(chan outcome, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						var zero R
						ch <- outcome{zero, fmt.Errorf("execution panicked: %v", r)}
					}
				}()
				result, err := next(ctx, param)
				ch <- outcome{result, err}
			}()

			select {
			case out := <-ch:
				return out.result, out.err
			case <-ctx.Done():
				var zero R
				return zero, fmt.Errorf("execution timeout after %s: %w", timeout, ctx.Err())
			}
		}
	}
}

package command_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/core/command"
)

func TestApplyDecorators(t *testing.T) {
	t.Parallel()

	t.Run("applies in declared order", func(t *testing.T) {
		t.Parallel()

		var executionOrder []string

		fn := func(ctx context.Context, p string) (string, error) {
			executionOrder = append(executionOrder, "handler")
			return p, nil
		}

		decorator1 := func(next command.ExecuteFunc[string, string]) command.ExecuteFunc[string, string] {
			return func(ctx context.Context, p string) (string, error) {
				executionOrder = append(executionOrder, "decorator1-before")
				result, err := next(ctx, p)
				executionOrder = append(executionOrder, "decorator1-after")
				return result, err
			}
		}
		decorator2 := func(next command.ExecuteFunc[string, string]) command.ExecuteFunc[string, string] {
			return func(ctx context.Context, p string) (string, error) {
				executionOrder = append(executionOrder, "decorator2-before")
				result, err := next(ctx, p)
				executionOrder = append(executionOrder, "decorator2-after")
				return result, err
			}
		}

		decorated := command.ApplyDecorators(fn, decorator1, decorator2)
		result, err := decorated(context.Background(), "test")

		require.NoError(t, err)
		assert.Equal(t, "test", result)
		assert.Equal(t, []string{
			"decorator1-before",
			"decorator2-before",
			"handler",
			"decorator2-after",
			"decorator1-after",
		}, executionOrder)
	})

	t.Run("no decorators returns original", func(t *testing.T) {
		t.Parallel()

		fn := func(ctx context.Context, n int) (int, error) {
			return n * 2, nil
		}
		decorated := command.ApplyDecorators(fn)

		result, err := decorated(context.Background(), 21)
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})
}

func TestWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fn := func(ctx context.Context, n int) (int, error) {
			attempts++
			if attempts < 3 {
				return 0, errors.New("transient")
			}
			return n, nil
		}

		decorated := command.ApplyDecorators(fn, command.WithRetry[int, int](3))
		result, err := decorated(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, 7, result)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		t.Parallel()

		persistent := errors.New("persistent failure")
		attempts := 0
		fn := func(ctx context.Context, n int) (int, error) {
			attempts++
			return 0, persistent
		}

		decorated := command.ApplyDecorators(fn, command.WithRetry[int, int](2))
		_, err := decorated(context.Background(), 1)

		require.ErrorIs(t, err, persistent)
		assert.Equal(t, 3, attempts, "initial attempt plus two retries")
	})

	t.Run("stops retrying on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		fn := func(ctx context.Context, n int) (int, error) {
			attempts++
			cancel()
			return 0, errors.New("always fails")
		}

		decorated := command.ApplyDecorators(fn, command.WithRetry[int, int](5))
		_, err := decorated(ctx, 1)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}

func TestWithBackoff(t *testing.T) {
	t.Parallel()

	t.Run("retries with delays", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fn := func(ctx context.Context, n int) (int, error) {
			attempts++
			if attempts < 2 {
				return 0, errors.New("flaky")
			}
			return n, nil
		}

		start := time.Now()
		decorated := command.ApplyDecorators(fn,
			command.WithBackoff[int, int](3, 10*time.Millisecond, 100*time.Millisecond))
		result, err := decorated(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, 5, result)
		assert.Equal(t, 2, attempts)
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("aborts backoff wait on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fn := func(ctx context.Context, n int) (int, error) {
			cancel()
			return 0, errors.New("always fails")
		}

		decorated := command.ApplyDecorators(fn,
			command.WithBackoff[int, int](5, time.Minute, time.Hour))

		done := make(chan error, 1)
		go func() {
			_, err := decorated(ctx, 1)
			done <- err
		}()

		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("backoff ignored context cancellation")
		}
	})
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("fast execution passes through", func(t *testing.T) {
		t.Parallel()

		fn := func(ctx context.Context, n int) (int, error) {
			return n * 2, nil
		}

		decorated := command.ApplyDecorators(fn, command.WithTimeout[int, int](time.Second))
		result, err := decorated(context.Background(), 21)

		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("slow execution times out", func(t *testing.T) {
		t.Parallel()

		fn := func(ctx context.Context, n int) (int, error) {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(time.Second):
				return n, nil
			}
		}

		decorated := command.ApplyDecorators(fn, command.WithTimeout[int, int](10*time.Millisecond))
		_, err := decorated(context.Background(), 1)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "execution timeout")
	})

	t.Run("panicking execution becomes an error", func(t *testing.T) {
		t.Parallel()

		fn := func(ctx context.Context, n int) (int, error) {
			panic("kaboom")
		}

		decorated := command.ApplyDecorators(fn, command.WithTimeout[int, int](time.Second))
		_, err := decorated(context.Background(), 1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "kaboom")
	})

	t.Run("composes with command execution", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := 0
		fn := command.ApplyDecorators(
			func(ctx context.Context, n int) (int, error) {
				mu.Lock()
				attempts++
				n = attempts
				mu.Unlock()
				if n < 2 {
					return 0, errors.New("warming up")
				}
				return 42, nil
			},
			command.WithTimeout[int, int](time.Second),
			command.WithRetry[int, int](3),
		)

		cmd := command.New(fn)
		v, err := cmd.Execute(context.Background(), 0).Await()

		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})
}

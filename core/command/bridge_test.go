package command_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/core/command"
	"github.com/dmitrymomot/reactive/pkg/signal"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestBridge(t *testing.T) {
	t.Parallel()

	t.Run("forwards values to the command", func(t *testing.T) {
		t.Parallel()

		executed := make(chan int, 1)
		cmd := command.New(func(ctx context.Context, n int) (int, error) {
			executed <- n
			return n, nil
		})

		src := make(chan int)
		bridge := command.NewBridge(src, cmd)
		defer bridge.Stop()

		src <- 7

		select {
		case v := <-executed:
			assert.Equal(t, 7, v)
		case <-time.After(time.Second):
			t.Fatal("bridge never triggered the command")
		}
	})

	t.Run("drops values while the gate is closed", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var seen []int
		gateSrc := signal.New(true)
		cmd := command.New(func(ctx context.Context, n int) (int, error) {
			mu.Lock()
			seen = append(seen, n)
			mu.Unlock()
			return n, nil
		}, command.WithCanExecute[int, int](gateSrc))

		var logs syncBuffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

		src := make(chan int)
		bridge := command.NewBridge(src, cmd, command.WithBridgeLogger(logger))
		defer bridge.Stop()

		src <- 1
		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(seen) == 1
		}, time.Second, time.Millisecond)

		// Wait for the busy flag to clear, then close the gate externally.
		require.Eventually(t, cmd.CanExecute().Value, time.Second, time.Millisecond)
		gateSrc.Set(false)

		src <- 2 // dropped: gate is read fresh for every value
		require.Eventually(t, func() bool {
			return strings.Contains(logs.String(), "bridge dropped value")
		}, time.Second, time.Millisecond)

		gateSrc.Set(true)
		require.Eventually(t, cmd.CanExecute().Value, time.Second, time.Millisecond)

		src <- 3
		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(seen) == 2
		}, time.Second, time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []int{1, 3}, seen)
	})

	t.Run("stop halts forwarding and is idempotent", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		count := 0
		cmd := command.New(func(ctx context.Context, n int) (int, error) {
			mu.Lock()
			count++
			mu.Unlock()
			return n, nil
		})

		src := make(chan int, 4)
		bridge := command.NewBridge(src, cmd)

		bridge.Stop()
		bridge.Stop()

		src <- 1
		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Zero(t, count)
	})

	t.Run("terminates when the source closes", func(t *testing.T) {
		t.Parallel()

		cmd := command.New(func(ctx context.Context, n int) (int, error) {
			return n, nil
		})

		src := make(chan int)
		bridge := command.NewBridge(src, cmd)

		close(src)

		// Stop must return promptly because the goroutine already exited.
		done := make(chan struct{})
		go func() {
			bridge.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("bridge goroutine did not exit after source close")
		}
	})
}

package scheduler_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/pkg/scheduler"
)

func TestImmediate(t *testing.T) {
	t.Parallel()

	ran := false
	scheduler.Immediate{}.Schedule(func() { ran = true })
	assert.True(t, ran, "immediate scheduler runs inline")
}

func TestGoroutine(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	scheduler.Goroutine{}.Schedule(func() { close(done) })
	<-done
}

func TestSerial(t *testing.T) {
	t.Parallel()

	t.Run("preserves FIFO order", func(t *testing.T) {
		t.Parallel()

		serial := scheduler.NewSerial()

		var got []int
		for i := range 100 {
			serial.Schedule(func() { got = append(got, i) })
		}
		serial.Stop()

		require.Len(t, got, 100)
		for i, v := range got {
			assert.Equal(t, i, v)
		}
	})

	t.Run("serializes concurrent producers", func(t *testing.T) {
		t.Parallel()

		serial := scheduler.NewSerial()

		counter := 0 // mutated without locking; the scheduler is the lock
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				serial.Schedule(func() { counter++ })
			}()
		}
		wg.Wait()
		serial.Stop()

		assert.Equal(t, 50, counter)
	})

	t.Run("stop drains pending work and is idempotent", func(t *testing.T) {
		t.Parallel()

		serial := scheduler.NewSerial()

		ran := 0
		for range 10 {
			serial.Schedule(func() { ran++ })
		}
		serial.Stop()
		serial.Stop()

		assert.Equal(t, 10, ran)
	})

	t.Run("schedule after stop is a no-op", func(t *testing.T) {
		t.Parallel()

		serial := scheduler.NewSerial()
		serial.Stop()

		assert.NotPanics(t, func() {
			serial.Schedule(func() { t.Error("must not run after stop") })
		})
	})
}

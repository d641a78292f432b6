package signal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/pkg/signal"
)

func TestStreamPublish(t *testing.T) {
	t.Parallel()

	t.Run("delivers to all observers without replay", func(t *testing.T) {
		t.Parallel()

		stream := signal.NewStream[string]()
		stream.Publish("lost") // nobody observes yet

		var first, second []string
		cancel1 := stream.Observe(func(v string) { first = append(first, v) })
		defer cancel1()
		cancel2 := stream.Observe(func(v string) { second = append(second, v) })
		defer cancel2()

		stream.Publish("a")
		stream.Publish("b")

		assert.Equal(t, []string{"a", "b"}, first)
		assert.Equal(t, []string{"a", "b"}, second)
	})

	t.Run("does not deduplicate", func(t *testing.T) {
		t.Parallel()

		stream := signal.NewStream[int]()

		var got []int
		cancel := stream.Observe(func(v int) { got = append(got, v) })
		defer cancel()

		stream.Publish(1)
		stream.Publish(1)

		assert.Equal(t, []int{1, 1}, got)
	})

	t.Run("reports observer count", func(t *testing.T) {
		t.Parallel()

		stream := signal.NewStream[error]()
		assert.Equal(t, 0, stream.Publish(errors.New("unobserved")))

		cancel := stream.Observe(func(error) {})
		defer cancel()
		assert.Equal(t, 1, stream.Publish(errors.New("observed")))
	})

	t.Run("saturated subscriber still counts as an observer", func(t *testing.T) {
		t.Parallel()

		stream := signal.NewStream[int](signal.WithSubscriberBuffer(1))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := stream.Subscribe(ctx)

		assert.Equal(t, 1, stream.Publish(1))
		// The buffer is full: the event is dropped for the subscriber but
		// the publish is still considered observed.
		assert.Equal(t, 1, stream.Publish(2))

		assert.Equal(t, 1, <-ch)
		select {
		case v := <-ch:
			t.Fatalf("dropped event delivered: %d", v)
		default:
		}
	})
}

func TestStreamSubscribe(t *testing.T) {
	t.Parallel()

	t.Run("receives events through channel", func(t *testing.T) {
		t.Parallel()

		stream := signal.NewStream[int]()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := stream.Subscribe(ctx)
		stream.Publish(42)

		select {
		case v := <-ch:
			assert.Equal(t, 42, v)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	})

	t.Run("channel closes on stream close", func(t *testing.T) {
		t.Parallel()

		stream := signal.NewStream[int]()
		ch := stream.Subscribe(context.Background())

		stream.Close()

		select {
		case _, ok := <-ch:
			assert.False(t, ok, "expected channel to be closed")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for channel close")
		}
	})
}

func TestStreamAfterClose(t *testing.T) {
	t.Parallel()

	stream := signal.NewStream[int]()
	stream.Close()
	stream.Close() // idempotent

	require.Equal(t, 0, stream.Publish(1))

	called := false
	cancel := stream.Observe(func(int) { called = true })
	cancel()
	stream.Publish(2)
	assert.False(t, called)
}

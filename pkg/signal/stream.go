package signal

import "context"

// Stream is a hot multicast event channel. Unlike Signal it has no current
// value: events are not replayed to new observers, not deduplicated, and
// events published while nobody observes are dropped. All methods are safe
// for concurrent use.
type Stream[T any] struct {
	core core[T]
}

// NewStream creates an empty Stream.
func NewStream[T any](opts ...Option) *Stream[T] {
	s := &Stream[T]{}
	s.core.init(newOptions(opts))
	return s
}

// Publish delivers v to every current observer. Publish after Close is a
// no-op. Returns the number of observers registered at publish time. A
// channel subscriber whose buffer is full counts as observed even though
// the event is dropped for it; callback observers always receive the event.
func (s *Stream[T]) Publish(v T) int {
	s.core.mu.Lock()
	if s.core.closed {
		s.core.mu.Unlock()
		return 0
	}
	n := len(s.core.observers)
	s.core.publishLocked(v)
	s.core.mu.Unlock()

	s.core.pump()
	return n
}

// Observe registers fn as an observer for subsequent events. The returned
// function cancels the observation; calling it more than once is safe.
func (s *Stream[T]) Observe(fn func(T)) (cancel func()) {
	s.core.mu.Lock()
	if s.core.closed {
		s.core.mu.Unlock()
		return func() {}
	}
	id := s.core.addLocked(fn)
	s.core.mu.Unlock()

	return s.core.canceler(id)
}

// Subscribe returns a buffered channel receiving subsequent events. The
// channel is closed when ctx is cancelled or the stream is closed. Delivery
// is non-blocking: an event is dropped for a subscriber whose buffer is full.
func (s *Stream[T]) Subscribe(ctx context.Context) <-chan T {
	s.core.mu.Lock()
	if s.core.closed {
		s.core.mu.Unlock()
		ch := make(chan T)
		close(ch)
		return ch
	}
	ch, id := s.core.subscribeLocked()
	s.core.mu.Unlock()

	s.core.watch(ctx, id)
	return ch
}

// Close releases all observers and closes all subscriber channels after
// pending events are delivered. Close is idempotent.
func (s *Stream[T]) Close() {
	s.core.close()
}

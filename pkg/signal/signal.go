package signal

import (
	"context"
	"sync"

	"github.com/dmitrymomot/reactive/pkg/scheduler"
)

// DefaultSubscriberBuffer is the buffer size for channels returned by
// Subscribe when no override is configured.
const DefaultSubscriberBuffer = 16

// Option configures a Signal or Stream.
type Option func(*options)

type options struct {
	sched  scheduler.Scheduler
	buffer int
}

func newOptions(opts []Option) options {
	o := options{
		sched:  scheduler.Immediate{},
		buffer: DefaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithScheduler sets the scheduler on which observer callbacks are delivered.
// Default is scheduler.Immediate, which runs callbacks synchronously on the
// producing goroutine.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.sched = s
		}
	}
}

// WithSubscriberBuffer sets the buffer size for channels returned by
// Subscribe. Values are dropped for a subscriber whose buffer is full.
func WithSubscriberBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// Signal is a hot, multicast reactive value. It retains its most recent
// value, replays it to new observers, and deduplicates consecutive identical
// values. All methods are safe for concurrent use.
type Signal[T comparable] struct {
	core  core[T]
	value T
}

// New creates a Signal holding initial.
func New[T comparable](initial T, opts ...Option) *Signal[T] {
	s := &Signal[T]{value: initial}
	s.core.init(newOptions(opts))
	return s
}

// Value returns the current value without blocking.
func (s *Signal[T]) Value() T {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	return s.value
}

// Set updates the value and notifies observers. Setting a value equal to the
// current one is a no-op. Set after Close is a no-op.
func (s *Signal[T]) Set(v T) {
	s.core.mu.Lock()
	if s.core.closed || v == s.value {
		s.core.mu.Unlock()
		return
	}
	s.value = v
	s.core.publishLocked(v)
	s.core.mu.Unlock()

	s.core.pump()
}

// Update atomically transforms the current value: fn receives the current
// value and returns the next one. Updates are serialized, so each fn sees
// the result of the previous update, and the value assignment and the
// observer publication are enqueued as one step; a concurrent update cannot
// interleave between read and write. Deduplication and delivery follow the
// Set rules. Update after Close is a no-op.
//
// fn runs inside the signal's serialization point and must not call back
// into the same signal. Observer callbacks run after fn returns, with no
// internal lock held.
func (s *Signal[T]) Update(fn func(T) T) {
	s.core.mu.Lock()
	if s.core.closed {
		s.core.mu.Unlock()
		return
	}
	v := fn(s.value)
	if v == s.value {
		s.core.mu.Unlock()
		return
	}
	s.value = v
	s.core.publishLocked(v)
	s.core.mu.Unlock()

	s.core.pump()
}

// Observe registers fn as an observer. The current value is delivered
// immediately (through the signal's scheduler), followed by every subsequent
// change. The returned function cancels the observation; calling it more
// than once is safe.
func (s *Signal[T]) Observe(fn func(T)) (cancel func()) {
	s.core.mu.Lock()
	if s.core.closed {
		s.core.mu.Unlock()
		return func() {}
	}
	id := s.core.addLocked(fn)
	s.core.replayLocked(id, s.value)
	s.core.mu.Unlock()

	s.core.pump()
	return s.core.canceler(id)
}

// Subscribe returns a buffered channel receiving the current value followed
// by every subsequent change. The channel is closed when ctx is cancelled or
// the signal is closed. Delivery is non-blocking: a value is dropped for a
// subscriber whose buffer is full.
func (s *Signal[T]) Subscribe(ctx context.Context) <-chan T {
	s.core.mu.Lock()
	if s.core.closed {
		s.core.mu.Unlock()
		ch := make(chan T)
		close(ch)
		return ch
	}
	ch, id := s.core.subscribeLocked()
	s.core.replayLocked(id, s.value)
	s.core.mu.Unlock()

	s.core.pump()
	s.core.watch(ctx, id)
	return ch
}

// Close releases all observers and closes all subscriber channels after
// pending values are delivered. Value remains readable. Close is idempotent.
func (s *Signal[T]) Close() {
	s.core.close()
}

// core holds the multicast machinery shared by Signal and Stream: the
// observer registry and a FIFO dispatch queue that serializes concurrent
// publishes into one total delivery order.
type core[T any] struct {
	mu          sync.Mutex
	observers   map[uint64]*observer[T]
	nextID      uint64
	pending     []func()
	dispatching bool
	closed      bool
	opts        options
}

type observer[T any] struct {
	fn func(T)
	ch chan T
}

func (c *core[T]) init(o options) {
	c.observers = make(map[uint64]*observer[T])
	c.opts = o
}

func (c *core[T]) addLocked(fn func(T)) uint64 {
	id := c.nextID
	c.nextID++
	c.observers[id] = &observer[T]{fn: fn}
	return id
}

func (c *core[T]) subscribeLocked() (chan T, uint64) {
	ch := make(chan T, c.opts.buffer)
	id := c.nextID
	c.nextID++
	c.observers[id] = &observer[T]{ch: ch}
	return ch, id
}

// publishLocked enqueues delivery of v to a snapshot of the current
// observers. Must be called with mu held; the caller runs pump after
// releasing the lock.
func (c *core[T]) publishLocked(v T) {
	if len(c.observers) == 0 {
		return
	}
	targets := make([]*observer[T], 0, len(c.observers))
	for _, ob := range c.observers {
		targets = append(targets, ob)
	}
	c.pending = append(c.pending, func() {
		for _, ob := range targets {
			ob.deliver(v)
		}
	})
}

// replayLocked enqueues delivery of v to a single freshly-registered
// observer, preserving FIFO order relative to in-flight publishes.
func (c *core[T]) replayLocked(id uint64, v T) {
	ob := c.observers[id]
	c.pending = append(c.pending, func() {
		ob.deliver(v)
	})
}

// pump drains the dispatch queue. Only one goroutine pumps at a time;
// concurrent producers enqueue and return, their values delivered in order
// by the active pump.
func (c *core[T]) pump() {
	c.mu.Lock()
	if c.dispatching {
		c.mu.Unlock()
		return
	}
	c.dispatching = true

	for len(c.pending) > 0 {
		fn := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()

		c.opts.sched.Schedule(fn)

		c.mu.Lock()
	}
	c.dispatching = false
	c.mu.Unlock()
}

func (ob *observer[T]) deliver(v T) {
	if ob.ch != nil {
		select {
		case ob.ch <- v:
		default:
			// Subscriber buffer full: drop for this subscriber rather
			// than block the producer.
		}
		return
	}
	defer func() {
		_ = recover() // observer panics never reach the producer
	}()
	ob.fn(v)
}

func (c *core[T]) canceler(id uint64) func() {
	return func() {
		c.remove(id)
	}
}

func (c *core[T]) remove(id uint64) {
	c.mu.Lock()
	ob, ok := c.observers[id]
	if ok {
		delete(c.observers, id)
		if ob.ch != nil {
			ch := ob.ch
			c.pending = append(c.pending, func() { close(ch) })
		}
	}
	c.mu.Unlock()

	if ok {
		c.pump()
	}
}

// watch removes subscription id when ctx is cancelled.
func (c *core[T]) watch(ctx context.Context, id uint64) {
	if ctx.Done() == nil {
		return
	}
	go func() {
		<-ctx.Done()
		c.remove(id)
	}()
}

func (c *core[T]) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for id, ob := range c.observers {
		delete(c.observers, id)
		if ob.ch != nil {
			ch := ob.ch
			c.pending = append(c.pending, func() { close(ch) })
		}
	}
	c.mu.Unlock()

	c.pump()
}

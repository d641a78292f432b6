package scheduler

import "sync"

// Scheduler decides where a unit of work runs.
type Scheduler interface {
	// Schedule enqueues fn for execution. Implementations must not panic
	// if fn panics; recovery is the caller's concern.
	Schedule(fn func())
}

// Immediate runs work inline on the calling goroutine.
// This is the default scheduler for library components.
type Immediate struct{}

// Schedule runs fn synchronously.
func (Immediate) Schedule(fn func()) {
	fn()
}

// Goroutine runs each unit of work on its own goroutine.
type Goroutine struct{}

// Schedule runs fn on a new goroutine.
func (Goroutine) Schedule(fn func()) {
	go fn()
}

// Serial runs work on a single dedicated goroutine in FIFO order.
// It is the single-threaded execution context analogue: work scheduled
// from any goroutine is serialized, so consumers never observe concurrent
// notifications.
type Serial struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

// NewSerial creates a serial scheduler and starts its worker goroutine.
// Call Stop to release it.
//
// Example:
//
//	serial := scheduler.NewSerial()
//	defer serial.Stop()
func NewSerial() *Serial {
	s := &Serial{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// Schedule enqueues fn in FIFO order. Scheduling after Stop is a no-op.
func (s *Serial) Schedule(fn func()) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Stop drains all pending work and stops the worker goroutine.
// It blocks until the queue is empty. Stop is idempotent.
func (s *Serial) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
}

func (s *Serial) run() {
	defer s.wg.Done()
	for {
		s.drain()

		select {
		case <-s.wake:
		case <-s.done:
			s.drain()
			return
		}
	}
}

func (s *Serial) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		fn()
	}
}

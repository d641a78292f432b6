package command

import (
	"sync/atomic"

	"github.com/dmitrymomot/reactive/pkg/signal"
)

// tracker converts begin/end execution markers into a busy signal. The
// in-flight count is mutated only inside the busy signal's Update, so
// concurrent begin/end pairs cannot reorder the published transitions,
// while observers are delivered with no tracker state locked: a busy or
// can-execute observer is free to read command state or trigger another
// execution without deadlocking.
type tracker struct {
	count atomic.Int64
	busy  *signal.Signal[bool]
}

func newTracker(opts ...signal.Option) *tracker {
	return &tracker{busy: signal.New(false, opts...)}
}

// begin marks the start of one execution.
func (t *tracker) begin() {
	t.busy.Update(func(bool) bool {
		return t.count.Add(1) > 0
	})
}

// end marks the completion of one execution. An end without a matching
// begin is ignored; the count never goes negative.
func (t *tracker) end() {
	t.busy.Update(func(bool) bool {
		// Serialized by Update; plain load/store cannot race another marker.
		n := t.count.Load()
		if n > 0 {
			n--
			t.count.Store(n)
		}
		return n > 0
	})
}

// executing returns the busy signal: true iff the in-flight count is above zero.
func (t *tracker) executing() *signal.Signal[bool] {
	return t.busy
}

// inFlight returns the current in-flight count.
func (t *tracker) inFlight() int {
	return int(t.count.Load())
}

package command

import (
	"github.com/dmitrymomot/reactive/pkg/signal"
)

// gate combines the busy signal with zero or more permission sources into
// one can-execute signal: allowed by every source AND not currently busy.
// The output is hot, shared, deduplicated, and replays its latest value, so
// every observer sees the identical sequence without re-triggering the
// computation.
type gate struct {
	out     *signal.Signal[bool]
	busy    *signal.Signal[bool]
	sources []*signal.Signal[bool]
	cancels []func()
}

func newGate(busy *signal.Signal[bool], sources []*signal.Signal[bool], opts ...signal.Option) *gate {
	g := &gate{
		out:     signal.New(false, opts...),
		busy:    busy,
		sources: sources,
	}

	// Observation replays the current value, so the initial state is
	// computed immediately on wiring.
	g.cancels = append(g.cancels, busy.Observe(func(bool) { g.recompute() }))
	for _, src := range sources {
		g.cancels = append(g.cancels, src.Observe(func(bool) { g.recompute() }))
	}
	return g
}

// recompute re-derives the gate output. The input reads happen inside the
// output signal's Update, so the value assignment always carries the inputs
// as of publication time: a recompute that was triggered by a stale input
// change re-reads the current state and cannot overwrite a newer result.
func (g *gate) recompute() {
	g.out.Update(func(bool) bool {
		v := !g.busy.Value()
		for _, src := range g.sources {
			if !v {
				break
			}
			v = src.Value()
		}
		return v
	})
}

// canExecute returns the combined gate signal.
func (g *gate) canExecute() *signal.Signal[bool] {
	return g.out
}

// release stops all input observations and pins the gate closed.
func (g *gate) release() {
	for _, cancel := range g.cancels {
		cancel()
	}
	g.cancels = nil
	g.out.Set(false)
}

// Package signal provides hot, multicast reactive values for single-process
// use: Signal for state and Stream for events.
//
// A Signal holds its current value. New observers immediately receive the
// latest value (replay-latest) and then every subsequent change. Consecutive
// identical values are deduplicated, so observers never see spurious repeats.
// All observers of one signal see the identical sequence of values.
//
// A Stream multicasts discrete events without replay or deduplication.
// Events published while nobody observes are dropped.
//
// # Usage
//
// Observing state changes:
//
//	busy := signal.New(false)
//
//	cancel := busy.Observe(func(v bool) {
//	    fmt.Println("busy:", v)
//	})
//	defer cancel()
//
//	busy.Set(true)  // observers notified
//	busy.Set(true)  // deduplicated, no notification
//	busy.Set(false) // observers notified
//
// Consuming through a channel:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	for v := range busy.Subscribe(ctx) {
//	    render(v)
//	}
//
// # Delivery
//
// Observer callbacks run on the signal's scheduler (Immediate by default, so
// delivery is synchronous with Set). Channel subscribers get a buffered
// channel with non-blocking delivery: if a subscriber's buffer is full the
// value is dropped for that subscriber rather than blocking the producer or
// the other subscribers. Subscriptions are cleaned up when their context is
// cancelled or the signal is closed.
//
// A panic inside an observer callback is recovered and discarded; producers
// are never failed by their consumers.
//
// # Thread safety
//
// All types are safe for concurrent use. Values produced concurrently are
// serialized through an internal FIFO dispatch queue, so every observer sees
// changes in the same total order. Update performs an atomic
// read-modify-write inside the same serialization point for derived state
// that must not interleave with concurrent writers.
package signal

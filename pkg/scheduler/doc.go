// Package scheduler provides execution contexts for delivering observer
// notifications.
//
// Reactive components deliver values to observers through a Scheduler. The
// choice of scheduler decides where observer callbacks run:
//
//   - Immediate: callbacks run inline on the goroutine that produced the
//     value. Deterministic and allocation-free; the default for library
//     components.
//   - Serial: callbacks run on a single dedicated goroutine in FIFO order.
//     This is the analogue of a UI thread: observers never see concurrent
//     re-entrant notifications.
//   - Goroutine: each callback runs on its own goroutine. Suitable for
//     fire-and-forget background work where ordering does not matter.
//
// Basic usage:
//
//	serial := scheduler.NewSerial()
//	defer serial.Stop()
//
//	sig := signal.New(false, signal.WithScheduler(serial))
//
// # Shutdown
//
// Serial schedulers own a goroutine and must be stopped. Stop drains all
// pending work before returning. Scheduling after Stop is a safe no-op.
package scheduler

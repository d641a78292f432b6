package command

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/reactive/core/logger"
)

// Bridge turns an external push-based source into automatic, gate-respecting
// command triggers: each value received from the source executes the command
// if CanExecute is true at that moment, and is dropped silently otherwise.
//
// The gate is read fresh for every source value, never cached. Execution is
// fire-and-forget: invocation results are discarded, failures still flow
// through the command's Errors stream.
//
// Example:
//
//	clicks := make(chan Coordinates)
//	bridge := command.NewBridge(clicks, selectTile)
//	defer bridge.Stop()
type Bridge struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// BridgeOption configures a Bridge.
type BridgeOption func(*bridgeConfig)

type bridgeConfig struct {
	logger *slog.Logger
}

// WithBridgeLogger sets the logger for the bridge. Disabled by default.
func WithBridgeLogger(logger *slog.Logger) BridgeOption {
	return func(cfg *bridgeConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// NewBridge starts forwarding values from src to cmd. The bridge runs until
// Stop is called or src is closed.
func NewBridge[P, R any](src <-chan P, cmd *Command[P, R], opts ...BridgeOption) *Bridge {
	cfg := bridgeConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bridge{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(b.done)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-src:
				if !ok {
					return
				}
				// Read the gate fresh per value; a stale snapshot could
				// trigger a command that just became busy or forbidden.
				if !cmd.CanExecute().Value() {
					cfg.logger.Debug("bridge dropped value",
						logger.Command(cmd.Name()))
					continue
				}
				// Fresh context: stopping the bridge must not cancel an
				// execution it already triggered.
				cmd.Execute(context.Background(), v)
			}
		}
	}()

	return b
}

// Stop halts forwarding and releases the source subscription. It blocks
// until the bridge goroutine has exited. In-flight executions triggered
// before Stop keep running. Stop is idempotent.
func (b *Bridge) Stop() {
	b.stopOnce.Do(b.cancel)
	<-b.done
}

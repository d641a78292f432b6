// Package logger provides structured logging attribute helpers built on Go's
// standard slog package. It offers a consistent vocabulary for the attributes
// the command engine and its hosts emit, with nil-safe constructors that
// return an empty Attr for missing values.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/reactive/core/logger"
//
//	log.Error("execution failed",
//		logger.Error(err),
//		logger.Command("SaveDocument"),
//		logger.InvocationID(id),
//	)
//
// # Nil Safety
//
// Helpers accepting errors, IDs, or arbitrary values return an empty Attr
// when the value is absent, so call sites never need conditional logging:
//
//	log.Warn("fault dropped",
//		logger.Error(err),       // empty Attr when err == nil
//		logger.Command(name),    // empty Attr when name == ""
//	)
//
// # Attribute Helpers
//
//	// Error handling
//	log.Error("operation failed",
//		logger.Error(err),
//		logger.Component("command_engine"),
//	)
//
//	// Multiple errors from a combined execution
//	log.Error("batch failed",
//		logger.Errors(err1, err2, err3),
//		logger.RetryCount(3),
//	)
//
//	// Command lifecycle
//	log.Info("execution finished",
//		logger.Command("SyncInbox"),
//		logger.InvocationID(inv.ID()),
//		logger.InFlight(cmd.InFlight()),
//		logger.Duration(time.Since(start)),
//		logger.Result("success"),
//	)
//
//	// Debugging
//	log.Debug("observer panicked",
//		logger.Panic(recovered),
//		logger.Stack(),
//	)
package logger

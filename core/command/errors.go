package command

import "errors"

var (
	// ErrCommandDisposed is returned when executing a command after Dispose.
	ErrCommandDisposed = errors.New("command is disposed")

	// ErrInvalidParameterType is returned by Adapter.Execute when the supplied
	// parameter is non-nil and not assignable to the command's parameter type.
	ErrInvalidParameterType = errors.New("invalid parameter type")

	// ErrNoChildCommands is used in the panic raised when Combine is called
	// with an empty child list.
	ErrNoChildCommands = errors.New("combine requires at least one child command")

	// ErrChildCommandFailed wraps child failures surfacing through a combined
	// command's invocation.
	ErrChildCommandFailed = errors.New("child command failed")

	// ErrCanExecuteSource wraps failures of a caller-supplied can-execute
	// source. The command is disabled for that evaluation instead of crashing.
	ErrCanExecuteSource = errors.New("can-execute source failed")
)

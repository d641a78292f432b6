package command

// Config holds tuning knobs for a command's internal channels.
// Designed for environment-based configuration using popular env parsing libraries.
type Config struct {
	// SignalBuffer is the channel buffer for CanExecute/IsExecuting subscribers.
	SignalBuffer int `env:"COMMAND_SIGNAL_BUFFER" envDefault:"16"`

	// ResultBuffer is the channel buffer for Results subscribers.
	ResultBuffer int `env:"COMMAND_RESULT_BUFFER" envDefault:"16"`

	// ErrorBuffer is the channel buffer for Errors subscribers. Faults are
	// bursty; a larger buffer reduces drops for slow error consumers.
	ErrorBuffer int `env:"COMMAND_ERROR_BUFFER" envDefault:"64"`
}

// DefaultConfig returns sensible defaults for production use.
func DefaultConfig() Config {
	return Config{
		SignalBuffer: 16,
		ResultBuffer: 16,
		ErrorBuffer:  64,
	}
}

func (c Config) normalize() Config {
	if c.SignalBuffer <= 0 {
		c.SignalBuffer = DefaultConfig().SignalBuffer
	}
	if c.ResultBuffer <= 0 {
		c.ResultBuffer = DefaultConfig().ResultBuffer
	}
	if c.ErrorBuffer <= 0 {
		c.ErrorBuffer = DefaultConfig().ErrorBuffer
	}
	return c
}

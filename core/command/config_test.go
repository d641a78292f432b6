package command_test

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/core/command"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := command.DefaultConfig()
	assert.Equal(t, 16, cfg.SignalBuffer)
	assert.Equal(t, 16, cfg.ResultBuffer)
	assert.Equal(t, 64, cfg.ErrorBuffer)
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults apply without env vars", func(t *testing.T) {
		var cfg command.Config
		require.NoError(t, env.Parse(&cfg))

		assert.Equal(t, command.DefaultConfig(), cfg)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		t.Setenv("COMMAND_SIGNAL_BUFFER", "4")
		t.Setenv("COMMAND_ERROR_BUFFER", "128")

		var cfg command.Config
		require.NoError(t, env.Parse(&cfg))

		assert.Equal(t, 4, cfg.SignalBuffer)
		assert.Equal(t, 16, cfg.ResultBuffer)
		assert.Equal(t, 128, cfg.ErrorBuffer)
	})
}

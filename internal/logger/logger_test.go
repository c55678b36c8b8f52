package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	require.NoError(t, Init("warn"))

	assert.True(t, Logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.InfoLevel))
}

func TestInit_InvalidLevel(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })
	nop := zap.NewNop()
	Logger = nop

	err := Init("loud")

	assert.ErrorContains(t, err, `invalid log level "loud"`)
	assert.Same(t, nop, Logger)
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoggerNeverNil(t *testing.T) {
	// The package init installs a no-op logger, so logging before
	// Initialize must not panic.
	require.NotNil(t, Logger)
	Logger.Infow("pre-init message", FieldComponent, "arm_L0")
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(false))
	require.NotNil(t, Logger)

	require.NoError(t, Initialize(true))
	assert.True(t, JSONOutput)
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
	}
}

func TestShouldLogTrace(t *testing.T) {
	assert.False(t, ShouldLogTrace(VerbosityDebug))
	assert.True(t, ShouldLogTrace(VerbosityTrace))
}

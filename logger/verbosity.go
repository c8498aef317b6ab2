package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
//
// Example usage:
//
//	verbosity, _ := cmd.Flags().GetCount("verbose")
//	logger.InitializeWithLevel(false, logger.VerbosityToLevel(verbosity))
const (
	VerbosityUser  = 0 // No flags: results and errors only
	VerbosityInfo  = 1 // -v: + progress, discovery, draw status
	VerbosityDebug = 2 // -vv: + parent resolution, parameter loads, timing
	VerbosityTrace = 3 // -vvv: + per-node hierarchy walk detail
)

// VerbosityToLevel maps verbosity flags (-v, -vv, etc.) to zap log levels.
//
// Mapping:
//
//	0 (none)  -> WarnLevel  (errors and warnings only)
//	1 (-v)    -> InfoLevel  (+ informational messages)
//	2+ (-vv)  -> DebugLevel (+ debug messages)
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// ShouldLogTrace returns true for verbosity >= 3 (-vvv).
// Use this for very detailed per-node trace logging.
func ShouldLogTrace(verbosity int) bool {
	return verbosity >= VerbosityTrace
}

package util

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	debug := NewLogger("debug")
	if !debug.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug logger should enable debug output")
	}

	warn := NewLogger("warn")
	if warn.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("warn logger should suppress info output")
	}
}

func TestNewLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	logger := NewLogger("verbose")
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("unknown level should not enable debug")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("unknown level should fall back to info")
	}
}

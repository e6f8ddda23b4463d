package main

import (
	"log/slog"
	"testing"

	"symdex/internal/config"
)

func resetLogFlags(t *testing.T) {
	t.Helper()
	verboseFlag = 0
	quietFlag = false
	t.Cleanup(func() {
		verboseFlag = 0
		quietFlag = false
	})
}

func TestCommandLogLevelFromConfig(t *testing.T) {
	resetLogFlags(t)
	cfg := config.DefaultConfig()

	cases := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, c := range cases {
		cfg.Logging.Level = c.level
		if got := commandLogLevel(cfg); got != c.want {
			t.Errorf("level %q: got %v, want %v", c.level, got, c.want)
		}
	}
}

func TestCommandLogLevelFlagsOverrideConfig(t *testing.T) {
	resetLogFlags(t)
	cfg := config.DefaultConfig()
	cfg.Logging.Level = "error"

	verboseFlag = 1
	if got := commandLogLevel(cfg); got != slog.LevelInfo {
		t.Errorf("-v should override config level, got %v", got)
	}

	verboseFlag = 2
	if got := commandLogLevel(cfg); got != slog.LevelDebug {
		t.Errorf("-vv should select debug, got %v", got)
	}

	verboseFlag = 0
	quietFlag = true
	cfg.Logging.Level = "debug"
	if got := commandLogLevel(cfg); got <= slog.LevelError {
		t.Errorf("quiet should suppress standard levels, got %v", got)
	}
}

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{-1, "warn"},
		{0, "warn"},
		{1, "info"},
		{2, "debug"},
		{5, "debug"},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.count); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"trace", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.level); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "debug")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !GetLogger().Core().Enabled(zapcore.DebugLevel) {
		t.Error("logger should be at debug level from environment")
	}
}

func TestInitialize_DefaultLevel(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	core := GetLogger().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("default logger should not emit info")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("default logger should emit warnings")
	}
}

func TestInitialize_ExplicitLevelWins(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "debug")

	if err := Initialize("error"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.WarnLevel) {
		t.Error("explicit level should override the environment")
	}
}

func TestGetLogger_BeforeInitialize(t *testing.T) {
	logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger() = nil, want no-op logger")
	}
	Warn("ignored")
	Sync()
}

func TestWarn_UsesPackageLogger(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	old := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = old })

	Warn("display failed", zap.String("reason", "no tty"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if entries[0].Message != "display failed" || entries[0].ContextMap()["reason"] != "no tty" {
		t.Errorf("entry = %+v", entries[0])
	}
}

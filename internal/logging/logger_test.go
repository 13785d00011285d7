package logging

import (
	"context"
	"log/slog"
	"testing"
)

func resetState() {
	mutex.Lock()
	moduleLoggers = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	isInitialized = false
	mutex.Unlock()
}

func TestModuleLevelOverride(t *testing.T) {
	resetState()

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"hal": "debug",
			"api": "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"hal", true, true, true},
		{"api", false, false, true},
		{"other", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()

			if got := handler.Enabled(context.Background(), slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("module %q: Debug enabled = %v, want %v", tt.module, got, tt.wantDebug)
			}
			if got := handler.Enabled(context.Background(), slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("module %q: Info enabled = %v, want %v", tt.module, got, tt.wantInfo)
			}
			if got := handler.Enabled(context.Background(), slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("module %q: Warn enabled = %v, want %v", tt.module, got, tt.wantWarn)
			}
		})
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	resetState()

	// Loggers created before Initialize default to info level
	handler := GetLogger("early").Handler()
	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Pre-init logger should not enable debug")
	}
	if !handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Pre-init logger should enable info")
	}

	// Initialize re-levels existing loggers
	Initialize(Config{Level: "debug", Format: "text"})
	handler = GetLogger("early").Handler()
	if !handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Logger should enable debug after Initialize with debug level")
	}
}

func TestGetLoggerReturnsSameInstance(t *testing.T) {
	resetState()
	Initialize(Config{Level: "info", Format: "text"})

	if GetLogger("hal") != GetLogger("hal") {
		t.Error("GetLogger should return the same instance for the same module")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  *slog.Level
	}{
		{"debug", levelPtr(slog.LevelDebug)},
		{"INFO", levelPtr(slog.LevelInfo)},
		{"warning", levelPtr(slog.LevelWarn)},
		{"error", levelPtr(slog.LevelError)},
		{"bogus", nil},
	}

	for _, tt := range tests {
		got := parseLevel(tt.input)
		if (got == nil) != (tt.want == nil) {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		if got != nil && *got != *tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, *got, *tt.want)
		}
	}
}

func levelPtr(l slog.Level) *slog.Level {
	return &l
}

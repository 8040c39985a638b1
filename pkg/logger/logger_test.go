package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"unknown level falls back", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Init(tt.level, ""); err != nil {
				t.Errorf("Init(%q) error = %v", tt.level, err)
			}
			if Log == nil {
				t.Error("Init() left Log nil")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug") != zapcore.DebugLevel {
		t.Error("parseLevel(debug) wrong")
	}
	if parseLevel("bogus") != zapcore.InfoLevel {
		t.Error("parseLevel should fall back to info")
	}
}

func TestNamed_BeforeInit(t *testing.T) {
	saved := Log
	Log = nil
	defer func() { Log = saved }()

	if Named("test") == nil {
		t.Error("Named() must not return nil before Init")
	}
}

func TestSync_NilLogger(t *testing.T) {
	saved := Log
	Log = nil
	defer func() { Log = saved }()

	if err := Sync(); err != nil {
		t.Errorf("Sync() with nil logger error = %v", err)
	}
}

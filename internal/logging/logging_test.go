package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		verbose   bool
		wantDebug bool
		wantWarn  bool
	}{
		{verbose: true, wantDebug: true, wantWarn: true},
		{verbose: false, wantDebug: false, wantWarn: true},
	}

	for _, tt := range tests {
		logger := NewLogger(tt.verbose)
		core := logger.Desugar().Core()
		if got := core.Enabled(zapcore.DebugLevel); got != tt.wantDebug {
			t.Errorf("verbose=%v: debug enabled = %v, want %v", tt.verbose, got, tt.wantDebug)
		}
		if got := core.Enabled(zapcore.WarnLevel); got != tt.wantWarn {
			t.Errorf("verbose=%v: warn enabled = %v, want %v", tt.verbose, got, tt.wantWarn)
		}
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Infow("discarded", "key", "value")
	if logger.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("nop logger should not enable any level")
	}
}

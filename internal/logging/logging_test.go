package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevel(t *testing.T) {
	l, err := New("warn", false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error should be enabled at warn level")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}

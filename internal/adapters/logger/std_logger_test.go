package logger

import (
	"path/filepath"
	"testing"
)

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	log.Debug("debug", "k", 1)
	log.Info("info")
	log.Warn("warn", "k")
	log.Error("error", "err", nil)
	if err := log.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestNewServerLoggerBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "server.log")
	if _, err := NewServerLogger(path); err == nil {
		t.Fatal("expected an error for a log file in a missing directory")
	}
}

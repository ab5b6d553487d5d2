package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoggerConfigure(t *testing.T) {
	l := &Logger{level: "debug", format: "json", output: "stderr"}

	closer, err := l.Configure()
	if err != nil {
		t.Fatalf("failed to configure logger: %v", err)
	}
	closer()
}

func TestLoggerConfigureFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "briareus.log")
	l := &Logger{level: "info", format: "console", output: path}

	closer, err := l.Configure()
	if err != nil {
		t.Fatalf("failed to configure logger: %v", err)
	}
	closer()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestLoggerConfigureInvalid(t *testing.T) {
	if _, err := (&Logger{level: "verbose"}).Configure(); err == nil {
		t.Error("expected error for invalid level")
	}
	if _, err := (&Logger{level: "info", format: "xml"}).Configure(); err == nil {
		t.Error("expected error for invalid format")
	}
}

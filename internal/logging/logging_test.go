package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanplan.log")
	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("route planned")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"route planned"`) {
		t.Errorf("log output = %s", data)
	}
}

func TestNewLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanplan.log")
	logger, err := New(Config{Level: "warn", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("log output = %s", data)
	}
}

func TestNewBadOutput(t *testing.T) {
	if _, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "x.log")}); err == nil {
		t.Error("expected error for unwritable output path")
	}
}

func TestInitializeDefault(t *testing.T) {
	InitializeDefault()
	if Logger == nil {
		t.Fatal("global logger not initialized")
	}
	if Named("planner") == nil {
		t.Error("Named() returned nil")
	}
}

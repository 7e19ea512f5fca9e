package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsConfigFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"canvas.yaml", true},
		{"data/CANVAS.YML", true},
		{"notes.txt", false},
		{"canvas.yaml.swp", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		if got := IsConfigFile(tt.path); got != tt.want {
			t.Errorf("IsConfigFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherReportsYAMLChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "canvas.yaml")
	if err := os.WriteFile(target, []byte("root:\n  name: a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Errorf("Expected event for %s, got %s", target, name)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed")
	}
	// 重复关闭安全
	if err := w.Close(); err != nil {
		t.Errorf("second Close() returned %v", err)
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

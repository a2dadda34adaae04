package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_QuietWithoutFileIsNop(t *testing.T) {
	l, err := New(Options{Quiet: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if l.Core().Enabled(0) {
		t.Error("expected a no-op logger")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bucketlist.log")
	l, err := New(Options{Production: true, Level: "debug", File: p, Quiet: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Info("hello from test")
	l.Sync()

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hello from test") {
		t.Errorf("expected message in log file, got %q", b)
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

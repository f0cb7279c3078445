package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeWritesToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Logger.Printf("hello from test")
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "[noter] ") {
		t.Errorf("expected prefix in log, got %q", string(data))
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("expected message in log, got %q", string(data))
	}
}

func TestInitializeEmptyDirIsNoop(t *testing.T) {
	if err := Initialize(""); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := Close(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

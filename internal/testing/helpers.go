package testing

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// tWriter forwards log output to t.Log so it only shows up for failing
// or verbose tests.
type tWriter struct {
	t *testing.T
}

func (w tWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Logger returns a debug-level logger bound to t.
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// WriteInput writes content to dir/name, creating dir if needed, and
// returns the full path.
func WriteInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s failed: %v", name, err)
	}
	return path
}

// ReadOutput returns the content of dir/name, failing the test if it is
// missing.
func ReadOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s failed: %v", name, err)
	}
	return string(data)
}

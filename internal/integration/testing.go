package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeRailsScript imitates `bin/rails runner "<expr>"`: it answers the tenant
// listing with a fixed JSON array line surrounded by boot noise, answers
// status checks with an echoed boolean, logs every received expression, and
// succeeds for everything else.
const fakeRailsScript = `#!/bin/sh
echo "$2" >> "$(dirname "$0")/../runner.log"
case "$2" in
  *pluck*)
    echo "Loading application..."
    echo '["north","south"]'
    echo "done"
    ;;
  *enabled*)
    echo "=> true"
    ;;
esac
`

// failingRailsScript fails every action command the way a missing method does.
const failingRailsScript = `#!/bin/sh
case "$2" in
  *pluck*)
    echo '["north","south"]'
    ;;
  *)
    echo "NoMethodError" >&2
    exit 1
    ;;
esac
`

// WriteFakeRails installs a runner script as bin/rails in a fresh temp dir
// and returns the dir.
func WriteFakeRails(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "bin"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bin", "rails"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

// RunnerLog returns what the fake runner received, one expression per line.
func RunnerLog(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "runner.log"))
	if err != nil {
		t.Fatalf("read runner log: %v", err)
	}
	return string(data)
}

// NewTestContext returns a context that expires with the test.
func NewTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScene = `
config:
  gravity: [0, -10]
bodies:
  - static: true
    shapes:
      - type: box
        half_extents: [6, 0.5]
  - position: [0, 2]
    shapes:
      - type: circle
        radius: 0.5
  - position: [0.4, 4]
    angle: 0.3
    shapes:
      - type: box
        half_extents: [0.5, 0.5]
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestRunHashDeterministic verifies two runs print identical hash streams
func TestRunHashDeterministic(t *testing.T) {
	path := writeScene(t)
	args := []string{"-scene", path, "-steps", "60", "-every", "10"}

	var first, second, stderr bytes.Buffer
	if code := run(args, &first, &stderr); code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}
	if code := run(args, &second, &stderr); code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}

	if first.String() != second.String() {
		t.Error("Expected identical output across runs")
	}
	if lines := strings.Count(first.String(), "\n"); lines != 6 {
		t.Errorf("Expected 6 hash lines, got %d", lines)
	}
}

// TestRunRollback verifies the replay check passes
func TestRunRollback(t *testing.T) {
	path := writeScene(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-scene", path, "-steps", "80", "-every", "80", "-rollback-at", "30"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "rollback from step 30 replayed to 80") {
		t.Errorf("Expected rollback confirmation, got %q", stdout.String())
	}
}

// TestRunTraceAndSummary verifies the other output modes
func TestRunTraceAndSummary(t *testing.T) {
	path := writeScene(t)

	var trace, stderr bytes.Buffer
	if code := run([]string{"-scene", path, "-steps", "5", "-mode", "trace"}, &trace, &stderr); code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}
	// Two dynamic bodies per step
	if n := strings.Count(trace.String(), "  body "); n != 10 {
		t.Errorf("Expected 10 body lines, got %d", n)
	}

	var summary bytes.Buffer
	if code := run([]string{"-scene", path, "-steps", "5", "-mode", "summary"}, &summary, &stderr); code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.HasPrefix(summary.String(), "steps 5 bodies 3 dynamic 2") {
		t.Errorf("Unexpected summary %q", summary.String())
	}
}

// TestRunErrors verifies exit codes for bad flags and bad scenes
func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"Unknown mode", []string{"-mode", "xml"}, 2},
		{"Rollback beyond steps", []string{"-steps", "10", "-rollback-at", "20"}, 2},
		{"Bad flag", []string{"-nope"}, 2},
		{"Missing scene", []string{"-scene", filepath.Join(t.TempDir(), "none.yaml")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.code {
				t.Errorf("Expected exit %d, got %d (%s)", tt.code, code, stderr.String())
			}
		})
	}
}

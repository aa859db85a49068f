package main

import (
	"os"
	"path/filepath"
	"testing"
)

const tinyScenario = `{
  "duration_secs": 1,
  "producers": {"count": 1},
  "processors": {"count": 1},
  "strategies": {"count": 1}
}`

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "tiny.json")
	if err := os.WriteFile(configPath, []byte(tinyScenario), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	resultsDir := filepath.Join(dir, "results")

	code := run([]string{"dispatchfabric", configPath, resultsDir})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}

	for _, name := range []string{"tiny_log.txt", "tiny_summary.txt", "results.db"} {
		if _, err := os.Stat(filepath.Join(resultsDir, name)); err != nil {
			t.Errorf("expected artifact %s: %v", name, err)
		}
	}
}

func TestRunRejectsMissingArgs(t *testing.T) {
	if code := run([]string{"dispatchfabric"}); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestRunRejectsBadConfigPath(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{"dispatchfabric", filepath.Join(dir, "missing.json"), filepath.Join(dir, "out")})
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

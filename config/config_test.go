package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const validScenario = `{
  "duration_secs": 10,
  "producers": {"count": 2},
  "processors": {"count": 4},
  "strategies": {"count": 4},
  "stage1_rules": [
    {"msg_type": 0, "processors": [0]},
    {"msg_type": 1, "processors": [1]},
    {"msg_type": 2, "processors": [2]},
    {"msg_type": 3, "processors": [3]}
  ],
  "stage2_rules": [
    {"msg_type": 0, "strategy": 0},
    {"msg_type": 1, "strategy": 1},
    {"msg_type": 2, "strategy": 2},
    {"msg_type": 3, "strategy": 3}
  ]
}`

func TestLoadValidScenario(t *testing.T) {
	path := writeScenario(t, validScenario)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DurationSecs != 10 || cfg.ProducerCount != 2 || cfg.ProcessorCount != 4 || cfg.StrategyCount != 4 {
		t.Fatalf("unexpected counts: %+v", cfg)
	}
	if cfg.Stage1Routing[2] != 2 {
		t.Errorf("Stage1Routing[2] = %d, want 2", cfg.Stage1Routing[2])
	}
	if cfg.Stage2Routing[3] != 3 {
		t.Errorf("Stage2Routing[3] = %d, want 3", cfg.Stage2Routing[3])
	}
	// unrouted types default to shard 0
	if cfg.Stage1Routing[7] != 0 {
		t.Errorf("Stage1Routing[7] = %d, want 0 (default)", cfg.Stage1Routing[7])
	}
	if len(cfg.RawBytes()) == 0 {
		t.Error("RawBytes() should return the parsed file contents")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRejectsZeroDuration(t *testing.T) {
	path := writeScenario(t, `{"duration_secs":0,"producers":{"count":1},"processors":{"count":1},"strategies":{"count":1}}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero duration_secs")
	}
}

func TestLoadRejectsOutOfRangeStage1Route(t *testing.T) {
	body := `{
      "duration_secs": 5,
      "producers": {"count": 1},
      "processors": {"count": 1},
      "strategies": {"count": 1},
      "stage1_rules": [{"msg_type": 0, "processors": [5]}]
    }`
	path := writeScenario(t, body)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for out-of-range processor route")
	}
}

func TestLoadRejectsBadMsgType(t *testing.T) {
	body := `{
      "duration_secs": 5,
      "producers": {"count": 1},
      "processors": {"count": 1},
      "strategies": {"count": 1},
      "stage2_rules": [{"msg_type": 99, "strategy": 0}]
    }`
	path := writeScenario(t, body)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for out-of-range msg_type")
	}
}

package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SnapshotKeep != 20 {
		t.Errorf("SnapshotKeep = %d, want 20", cfg.SnapshotKeep)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENGAGE_DB", "/tmp/engage-test.db")
	t.Setenv("ENGAGE_SNAPSHOT_KEEP", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/engage-test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.SnapshotKeep != 5 {
		t.Errorf("SnapshotKeep = %d, want 5", cfg.SnapshotKeep)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("ENGAGE_SNAPSHOT_KEEP", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("error = %v, want parse env prefix", err)
	}
}

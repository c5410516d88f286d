package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFillsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	raw := "furnace:\n  eligible_tag: bricks\naudit_dir: logs\n"
	if err := os.WriteFile(p, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tu, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tu.Furnace.EligibleTag != "bricks" || tu.AuditDir != "logs" {
		t.Fatalf("overrides lost: %+v", tu)
	}
	if tu.Furnace.CoreBlock != "JUMBO_FURNACE_CORE" || tu.Furnace.BlockingKind != "LIVING" || tu.IndexPath != "index.sqlite" {
		t.Fatalf("defaults not applied: %+v", tu)
	}
}

func TestLoadRejectsSameCoreAndExterior(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	raw := "furnace:\n  core_block: X\n  exterior_block: X\n"
	if err := os.WriteFile(p, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/kestrel-mc/corelaunch/internal/paths"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	layout := paths.New(dir)

	cfg, err := Load(layout)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MSAClientID != DefaultMSAClientID {
		t.Errorf("expected default client id, got %s", cfg.MSAClientID)
	}

	if _, err := filepath.Abs(Path(layout)); err != nil {
		t.Fatal(err)
	}

	cfg.ShowSnapshots = true
	if err := cfg.Save(layout); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(layout)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.ShowSnapshots {
		t.Error("expected ShowSnapshots to round-trip through save/load")
	}
}

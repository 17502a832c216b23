package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrel-mc/corelaunch/internal/paths"
)

func TestFileLoaderResolvesSelfAndParent(t *testing.T) {
	dir := t.TempDir()
	layout := paths.New(dir)

	if err := os.MkdirAll(filepath.Dir(layout.VanillaDescriptor("1.20.4")), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(layout.VanillaDescriptor("1.20.4"), []byte(`{"id":"1.20.4"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(layout.ModdedDescriptor("1.20.4", "fabric", "0.15.0")), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(layout.ModdedDescriptor("1.20.4", "fabric", "0.15.0"), []byte(`{"inheritsFrom":"1.20.4"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ml := moddedLoader(layout, "1.20.4", "fabric", "0.15.0")
	self, err := ml.Load(context.Background(), ml.rootID)
	if err != nil {
		t.Fatalf("loading self: %v", err)
	}
	if string(self) != `{"inheritsFrom":"1.20.4"}` {
		t.Errorf("self = %s", self)
	}

	parent, err := ml.Load(context.Background(), "1.20.4")
	if err != nil {
		t.Fatalf("loading parent: %v", err)
	}
	if string(parent) != `{"id":"1.20.4"}` {
		t.Errorf("parent = %s", parent)
	}
}

func TestVanillaLoaderRootIDIsGameVersion(t *testing.T) {
	dir := t.TempDir()
	layout := paths.New(dir)
	if err := os.MkdirAll(filepath.Dir(layout.VanillaDescriptor("1.20.4")), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(layout.VanillaDescriptor("1.20.4"), []byte(`{"id":"1.20.4"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	vl := vanillaLoader(layout, "1.20.4")
	data, err := vl.Load(context.Background(), "1.20.4")
	if err != nil {
		t.Fatalf("loading vanilla descriptor: %v", err)
	}
	if string(data) != `{"id":"1.20.4"}` {
		t.Errorf("data = %s", data)
	}
}

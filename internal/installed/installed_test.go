package installed

import (
	"testing"

	"github.com/kestrel-mc/corelaunch/internal/loaders"
	"github.com/kestrel-mc/corelaunch/internal/paths"
)

func strp(s string) *string { return &s }

func TestContainsBothAbsentMatches(t *testing.T) {
	l := Default()
	l.Add("1.20.4", loaders.Vanilla, nil)
	if !l.Contains("1.20.4", loaders.Vanilla, nil) {
		t.Error("expected a match when both loader versions are absent")
	}
}

func TestContainsOneAbsentDoesNotMatch(t *testing.T) {
	l := Default()
	l.Add("1.20.4", loaders.Fabric, strp("0.15.0"))
	if l.Contains("1.20.4", loaders.Fabric, nil) {
		t.Error("expected no match when only one loader version is absent")
	}
	if l.Contains("1.20.4", loaders.Fabric, strp("0.14.0")) {
		t.Error("expected no match for a differing loader version")
	}
	if !l.Contains("1.20.4", loaders.Fabric, strp("0.15.0")) {
		t.Error("expected a match for the exact recorded loader version")
	}
}

func TestAddDoesNotDedup(t *testing.T) {
	l := Default()
	l.Add("1.20.4", loaders.Vanilla, nil)
	l.Add("1.20.4", loaders.Vanilla, nil)
	if len(l.Installed) != 2 {
		t.Errorf("expected Add to append unconditionally, got %d entries", len(l.Installed))
	}
}

func TestLoadCreatesDefaultWithComment(t *testing.T) {
	dir := t.TempDir()
	layout := paths.New(dir)

	l, err := Load(layout)
	if err != nil {
		t.Fatal(err)
	}
	if l.Comment != comment {
		t.Errorf("Comment = %q", l.Comment)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	layout := paths.New(dir)

	l, err := Load(layout)
	if err != nil {
		t.Fatal(err)
	}
	l.Add("1.20.4", loaders.Vanilla, nil)
	if err := l.Save(layout); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(layout)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.Contains("1.20.4", loaders.Vanilla, nil) {
		t.Error("expected the saved entry to survive a reload")
	}
}

package paths

import (
	"path/filepath"
	"testing"
)

func TestDescriptorDispatch(t *testing.T) {
	l := New("/base")
	if got, want := l.Descriptor("1.20.4", "", ""), filepath.Join("/base", "versions", "1.20.4", "vanilla.json"); got != want {
		t.Errorf("vanilla descriptor = %s, want %s", got, want)
	}
	if got, want := l.Descriptor("1.20.4", "vanilla", ""), filepath.Join("/base", "versions", "1.20.4", "vanilla.json"); got != want {
		t.Errorf("vanilla descriptor (explicit) = %s, want %s", got, want)
	}
	got := l.Descriptor("1.20.4", "fabric", "0.15.0")
	want := filepath.Join("/base", "versions", "1.20.4", "fabric", "0.15.0.json")
	if got != want {
		t.Errorf("modded descriptor = %s, want %s", got, want)
	}
}

func TestAssetObjectPrefix(t *testing.T) {
	l := New("/base")
	got := l.AssetObject("abcdef0123")
	want := filepath.Join("/base", "assets", "objects", "ab", "abcdef0123")
	if got != want {
		t.Errorf("asset object path = %s, want %s", got, want)
	}
}

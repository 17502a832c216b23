package manifest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleCatalog = `{
  "latest": {"release": "1.21", "snapshot": "24w10a"},
  "versions": [
    {"id": "1.21", "type": "release", "url": "https://example/1.21.json", "releaseTime": "2024-06-13T00:00:00+00:00", "sha1": "abc"},
    {"id": "24w10a", "type": "snapshot", "url": "https://example/24w10a.json", "releaseTime": "2024-03-06T00:00:00+00:00", "sha1": "def"},
    {"id": "1.20.4", "type": "release", "url": "https://example/1.20.4.json", "releaseTime": "2023-12-07T00:00:00+00:00", "sha1": "ghi"}
  ]
}`

func TestSanitizeAndGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	dir := t.TempDir()
	cache := filepath.Join(dir, "vanilla_manifest_v2.json")
	cat := NewCatalog(srv.Client(), cache, nil)
	cat.vanillaURLOverride(srv.URL)

	m, err := cat.Ensure(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got := m.Sanitize("latest-release"); got != "1.21" {
		t.Errorf("sanitize(latest-release) = %s, want 1.21", got)
	}
	if got := m.Sanitize("1.21"); got != "1.21" {
		t.Errorf("sanitize(1.21) = %s, want 1.21 (identity)", got)
	}
	if got := m.Sanitize("bogus"); got != "bogus" {
		t.Errorf("sanitize(bogus) = %s, want bogus (identity)", got)
	}

	if _, ok := m.Get("1.20.4"); !ok {
		t.Error("expected 1.20.4 to resolve")
	}
	if _, ok := m.Get("nonexistent"); ok {
		t.Error("expected nonexistent id to fail resolution")
	}
}

func TestEnsureFallsBackToCacheOnFetchFailure(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, "vanilla_manifest_v2.json")
	if err := os.WriteFile(cache, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	cat := NewCatalog(http.DefaultClient, cache, nil)
	cat.vanillaURLOverride("http://127.0.0.1:0/unreachable")

	m, err := cat.Ensure(context.Background())
	if err != nil {
		t.Fatalf("expected fallback to cache to succeed: %v", err)
	}
	if m.Latest.Release != "1.21" {
		t.Errorf("expected cached manifest to be parsed, got latest_release=%s", m.Latest.Release)
	}
}

func TestVersionsFiltersAndOrders(t *testing.T) {
	m := GameVersionManifest{
		Latest: latest{Release: "1.21", Snapshot: "24w10a"},
		Versions: []GameVersionInfo{
			{ID: "1.21", Type: TypeRelease, ReleaseTime: "2024-06-13T00:00:00+00:00"},
			{ID: "24w10a", Type: TypeSnapshot, ReleaseTime: "2024-03-06T00:00:00+00:00"},
			{ID: "1.20.4", Type: TypeRelease, ReleaseTime: "2023-12-07T00:00:00+00:00"},
		},
	}
	m.index()

	releasesOnly := m.Versions(false, false)
	if len(releasesOnly) != 2 {
		t.Fatalf("expected 2 releases with snapshots excluded, got %d", len(releasesOnly))
	}
	if releasesOnly[0].ID != "1.21" {
		t.Errorf("expected newest-first ordering, got %s first", releasesOnly[0].ID)
	}

	withSnapshots := m.Versions(true, false)
	if len(withSnapshots) != 3 {
		t.Fatalf("expected 3 versions with snapshots included, got %d", len(withSnapshots))
	}
}

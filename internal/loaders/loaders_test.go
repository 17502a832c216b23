package loaders

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

type countingFetcher struct {
	loader Loader
	calls  int64
	result []ModLoaderVersionInfo
}

func (f *countingFetcher) Loader() Loader { return f.loader }

func (f *countingFetcher) Fetch(ctx context.Context, gameVersion string) ([]ModLoaderVersionInfo, error) {
	atomic.AddInt64(&f.calls, 1)
	return f.result, nil
}

func TestManifestMemoizesPerGameVersion(t *testing.T) {
	fetcher := &countingFetcher{
		loader: Fabric,
		result: []ModLoaderVersionInfo{{VersionName: "0.15.0", Stability: StabilityStable, Loader: Fabric}},
	}
	m := NewManifest(fetcher)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.GetVersions(context.Background(), "1.20.4"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if calls := atomic.LoadInt64(&fetcher.calls); calls != 1 {
		t.Errorf("expected concurrent first-callers to share one fetch, got %d calls", calls)
	}

	if _, err := m.GetVersions(context.Background(), "1.20.4"); err != nil {
		t.Fatal(err)
	}
	if calls := atomic.LoadInt64(&fetcher.calls); calls != 1 {
		t.Errorf("expected a subsequent call to hit the memo, got %d calls", calls)
	}
}

func TestSanitizeVersionLatestStable(t *testing.T) {
	versions := []ModLoaderVersionInfo{
		{VersionName: "2.0-beta", Stability: StabilityBeta},
		{VersionName: "1.9", Stability: StabilityStable},
		{VersionName: "1.8", Stability: StabilityStable},
	}
	got, err := SanitizeVersion(Forge, "1.20.4", "latest-stable", versions)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1.9" {
		t.Errorf("latest-stable = %s, want 1.9", got)
	}

	got, err = SanitizeVersion(Forge, "1.20.4", "latest-beta", versions)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2.0-beta" {
		t.Errorf("latest-beta = %s, want 2.0-beta", got)
	}

	got, err = SanitizeVersion(Forge, "1.20.4", "1.8", versions)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1.8" {
		t.Errorf("identity resolution = %s, want 1.8", got)
	}
}

func TestSanitizeVersionEmptySequenceErrors(t *testing.T) {
	if _, err := SanitizeVersion(Forge, "1.20.4", "latest-stable", nil); err == nil {
		t.Fatal("expected a named error for an empty sequence, not a panic")
	}
	if _, err := SanitizeVersion(Forge, "1.20.4", "latest-beta", nil); err == nil {
		t.Fatal("expected a named error for an empty sequence, not a panic")
	}
}

package loaders

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Manifest wraps a Fetcher with the per-game-version memo the spec
// requires: first call populates the cache under a mutex, concurrent
// first-callers share one in-flight fetch via singleflight, and
// subsequent calls return the cached immutable slice directly.
type Manifest struct {
	fetcher Fetcher

	mu    sync.RWMutex
	cache map[string][]ModLoaderVersionInfo
	group singleflight.Group
}

// NewManifest wraps fetcher in a memoizing Manifest.
func NewManifest(fetcher Fetcher) *Manifest {
	return &Manifest{
		fetcher: fetcher,
		cache:   make(map[string][]ModLoaderVersionInfo),
	}
}

// GetVersions returns the compatible builds for gameVersion, fetching and
// memoizing on first access.
func (m *Manifest) GetVersions(ctx context.Context, gameVersion string) ([]ModLoaderVersionInfo, error) {
	m.mu.RLock()
	if v, ok := m.cache[gameVersion]; ok {
		m.mu.RUnlock()
		return v, nil
	}
	m.mu.RUnlock()

	v, err, _ := m.group.Do(gameVersion, func() (any, error) {
		m.mu.RLock()
		if v, ok := m.cache[gameVersion]; ok {
			m.mu.RUnlock()
			return v, nil
		}
		m.mu.RUnlock()

		fetched, err := m.fetcher.Fetch(ctx, gameVersion)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.cache[gameVersion] = fetched
		m.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ModLoaderVersionInfo), nil
}

// HasLoaderForGameVersion reports whether any build exists for gameVersion.
func (m *Manifest) HasLoaderForGameVersion(ctx context.Context, gameVersion string) bool {
	v, err := m.GetVersions(ctx, gameVersion)
	return err == nil && len(v) > 0
}

// Contains reports whether a concrete or symbolic loaderVersion resolves to
// an entry present in gameVersion's compatible builds.
func (m *Manifest) Contains(ctx context.Context, gameVersion, loaderVersion string) (bool, error) {
	versions, err := m.GetVersions(ctx, gameVersion)
	if err != nil {
		return false, err
	}
	resolved, err := SanitizeVersion(m.fetcher.Loader(), gameVersion, loaderVersion, versions)
	if err != nil {
		return false, err
	}
	for _, v := range versions {
		if v.VersionName == resolved {
			return true, nil
		}
	}
	return false, nil
}

// Sanitize resolves a symbolic or concrete loader version against the
// memoized compatible-builds sequence for gameVersion.
func (m *Manifest) Sanitize(ctx context.Context, gameVersion, loaderVersion string) (string, error) {
	versions, err := m.GetVersions(ctx, gameVersion)
	if err != nil {
		return "", err
	}
	return SanitizeVersion(m.fetcher.Loader(), gameVersion, loaderVersion, versions)
}

// Registry holds one Manifest per loader.
type Registry struct {
	manifests map[Loader]*Manifest
}

// NewRegistry builds a Registry from the four mod-loader fetchers.
func NewRegistry(fabric, quilt, forge, neoforge Fetcher) *Registry {
	r := &Registry{manifests: make(map[Loader]*Manifest, 4)}
	for _, f := range []Fetcher{fabric, quilt, forge, neoforge} {
		r.manifests[f.Loader()] = NewManifest(f)
	}
	return r
}

// For returns the memoizing Manifest for a loader, or nil for Vanilla
// (which has no per-loader catalog — it is resolved via the game-version
// manifest directly).
func (r *Registry) For(loader Loader) *Manifest {
	return r.manifests[loader]
}

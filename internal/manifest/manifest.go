// Package manifest implements the game-version catalog: a cached fetch of
// the upstream version list with symbolic-name resolution ("latest-release",
// "latest-snapshot") and cache-on-failure semantics.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"github.com/kestrel-mc/corelaunch/internal/corelog"
)

// VanillaManifestURL is the upstream Mojang version manifest endpoint.
const VanillaManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

// VersionType is the upstream release channel.
type VersionType string

const (
	TypeRelease  VersionType = "release"
	TypeSnapshot VersionType = "snapshot"
	TypeOldBeta  VersionType = "old_beta"
	TypeOldAlpha VersionType = "old_alpha"
)

// GameVersionInfo is one entry in the catalog.
type GameVersionInfo struct {
	ID          string      `json:"id"`
	Type        VersionType `json:"type"`
	URL         string      `json:"url"`
	ReleaseTime string      `json:"releaseTime"`
	SHA1        string      `json:"sha1"`
}

type latest struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// GameVersionManifest is the parsed upstream catalog, invariant: both
// designated pointers exist as keys of the version map.
type GameVersionManifest struct {
	Latest   latest            `json:"latest"`
	Versions []GameVersionInfo `json:"versions"`

	byID map[string]GameVersionInfo
}

func (m *GameVersionManifest) index() {
	m.byID = make(map[string]GameVersionInfo, len(m.Versions))
	for _, v := range m.Versions {
		m.byID[v.ID] = v
	}
}

// validate enforces the invariant that both latest pointers exist as keys.
func (m *GameVersionManifest) validate() error {
	if _, ok := m.byID[m.Latest.Release]; !ok {
		return fmt.Errorf("manifest: latest_release %q is not a known version id", m.Latest.Release)
	}
	if _, ok := m.byID[m.Latest.Snapshot]; !ok {
		return fmt.Errorf("manifest: latest_snapshot %q is not a known version id", m.Latest.Snapshot)
	}
	return nil
}

// Catalog fetches-once, caches-on-disk, and serves symbolic resolution.
type Catalog struct {
	client    *http.Client
	cachePath string
	catalogURL string
	log       *log.Logger
	manifest  *GameVersionManifest
}

// NewCatalog builds a Catalog backed by client (the shared retryable client
// from the download engine) and cachePath (paths.Layout.VanillaManifestCache()).
func NewCatalog(client *http.Client, cachePath string, logger *log.Logger) *Catalog {
	return &Catalog{client: client, cachePath: cachePath, catalogURL: VanillaManifestURL, log: corelog.Default(logger)}
}

// vanillaURLOverride is a test seam letting unit tests point the catalog at
// an httptest server instead of the real upstream endpoint.
func (c *Catalog) vanillaURLOverride(url string) {
	c.catalogURL = url
}

// Ensure fetches the manifest on first call, falling back to the on-disk
// cache on network failure; parse failure of either source is fatal.
func (c *Catalog) Ensure(ctx context.Context) (*GameVersionManifest, error) {
	if c.manifest != nil {
		return c.manifest, nil
	}

	data, fetchErr := c.fetch(ctx)
	if fetchErr != nil {
		c.log.Warn("manifest fetch failed, falling back to cache", "err", fetchErr)
		cached, err := os.ReadFile(c.cachePath)
		if err != nil {
			return nil, fmt.Errorf("manifest: fetch failed (%v) and no cache at %s: %w", fetchErr, c.cachePath, err)
		}
		data = cached
	} else {
		if err := os.MkdirAll(filepath.Dir(c.cachePath), 0o755); err == nil {
			_ = os.WriteFile(c.cachePath, data, 0o644)
		}
	}

	var m GameVersionManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parsing catalog: %w", err)
	}
	m.index()
	if err := m.validate(); err != nil {
		return nil, err
	}
	c.manifest = &m
	return c.manifest, nil
}

func (c *Catalog) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.catalogURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("manifest: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Sanitize resolves a symbolic name to a concrete id. Unknown names (and
// already-concrete ids) are returned unchanged, matching the contract
// `sanitize(name) ∈ versions.keys() ∪ {name}`.
func (m *GameVersionManifest) Sanitize(name string) string {
	switch name {
	case "latest-release":
		return m.Latest.Release
	case "latest-snapshot":
		return m.Latest.Snapshot
	default:
		return name
	}
}

// Get resolves a symbolic or concrete name to its GameVersionInfo.
func (m *GameVersionManifest) Get(name string) (GameVersionInfo, bool) {
	v, ok := m.byID[m.Sanitize(name)]
	return v, ok
}

// Versions returns the visible version set, filtered and sorted newest
// first. Ties in release time (rare, but upstream has duplicated timestamps
// for some historical entries) are broken by semver comparison where both
// ids parse as semver; non-semver ids (snapshots) keep upstream ordering.
func (m *GameVersionManifest) Versions(includeSnapshots, includeHistorical bool) []GameVersionInfo {
	out := make([]GameVersionInfo, 0, len(m.Versions))
	for _, v := range m.Versions {
		switch v.Type {
		case TypeRelease:
		case TypeSnapshot:
			if !includeSnapshots {
				continue
			}
		case TypeOldBeta, TypeOldAlpha:
			if !includeHistorical {
				continue
			}
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ReleaseTime != out[j].ReleaseTime {
			return out[i].ReleaseTime > out[j].ReleaseTime
		}
		si, erri := semver.NewVersion(out[i].ID)
		sj, errj := semver.NewVersion(out[j].ID)
		if erri == nil && errj == nil {
			return si.GreaterThan(sj)
		}
		return false
	})
	return out
}

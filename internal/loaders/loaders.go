// Package loaders implements the per-mod-loader compatibility catalogs:
// Fabric, Quilt, Forge, NeoForge. Each wraps an upstream fetch strategy
// behind a per-game-version memo so concurrent first-callers share one
// in-flight fetch (golang.org/x/sync/singleflight) and every caller after
// that gets a shared, immutable slice.
package loaders

import (
	"context"
)

// Loader identifies which mod-loader catalog a manifest belongs to.
type Loader string

const (
	Vanilla  Loader = "vanilla"
	Fabric   Loader = "fabric"
	Quilt    Loader = "quilt"
	Forge    Loader = "forge"
	NeoForge Loader = "neoforge"
)

// Stability is whether upstream flags a loader build as production-ready.
type Stability int

const (
	StabilityStable Stability = iota
	StabilityBeta
)

// ModLoaderVersionInfo is one upstream loader build compatible with a given
// game version.
type ModLoaderVersionInfo struct {
	VersionName  string
	Stability    Stability
	InstallerURL string
	Loader       Loader
}

// Fetcher is the per-loader upstream strategy: given a game version,
// return its compatible builds newest-first.
type Fetcher interface {
	Loader() Loader
	Fetch(ctx context.Context, gameVersion string) ([]ModLoaderVersionInfo, error)
}

// ErrEmptySequence is returned by SanitizeVersion when a symbolic name is
// requested against a loader with no builds for the given game version. It
// is also returned for "latest-stable" when builds exist but none is Stable.
type ErrEmptySequence struct {
	Loader      Loader
	GameVersion string
}

func (e *ErrEmptySequence) Error() string {
	return "loaders: no " + string(e.Loader) + " builds available for game version " + e.GameVersion
}

// SanitizeVersion resolves "latest-stable"/"latest-beta"/a concrete or
// unknown name against an upstream-ordered (newest-first) sequence.
// "latest-stable" is the first Stable entry; "latest-beta" is the first
// entry regardless of stability; anything else is returned unchanged.
func SanitizeVersion(loader Loader, gameVersion, name string, versions []ModLoaderVersionInfo) (string, error) {
	switch name {
	case "latest-stable":
		for _, v := range versions {
			if v.Stability == StabilityStable {
				return v.VersionName, nil
			}
		}
		if len(versions) == 0 {
			return "", &ErrEmptySequence{Loader: loader, GameVersion: gameVersion}
		}
		return "", &ErrEmptySequence{Loader: loader, GameVersion: gameVersion}
	case "latest-beta":
		if len(versions) == 0 {
			return "", &ErrEmptySequence{Loader: loader, GameVersion: gameVersion}
		}
		return versions[0].VersionName, nil
	default:
		return name, nil
	}
}

// Package download implements the content-addressed installer: a
// Downloadable capability interface, an Engine that honors its four-step
// acquire-if-missing contract, and a worker-pool batch runner (adapted from
// the teacher's parallel file downloader) for installing many artifacts at
// once with aggregate progress reporting.
package download

import (
	"context"

	hashpkg "github.com/kestrel-mc/corelaunch/internal/hash"
)

// AboutBlank is the URL scheme the upstream manifests use to mark a
// placeholder artifact (an inherited or synthetic library entry) that has
// nothing to fetch.
const AboutBlank = "about:blank"

// Downloadable is the capability every installable artifact implements:
// libraries, the vanilla/modded manifest itself, the asset index, asset
// objects, the logging config, and the Forge/NeoForge installer jar.
type Downloadable interface {
	// DownloadURL is the upstream source. AboutBlank means "nothing to fetch".
	DownloadURL() string
	// FilePath is the on-disk destination for the given game version.
	FilePath(gameVersion string) string
	// Hash is the expected digest, if the artifact declares one.
	Hash() (hashpkg.FileHash, bool)
	// Size is the expected byte count, if known; used only for progress.
	Size() (int64, bool)
	// RequiresCustomDownload reports whether CustomDownload should be used
	// in place of the generic GET-and-write procedure.
	RequiresCustomDownload() bool
	// CustomDownload performs an artifact-specific acquisition procedure
	// (e.g. extracting version.json out of a downloaded installer jar).
	// Only called when RequiresCustomDownload returns true.
	CustomDownload(ctx context.Context, gameVersion string) error
}

// Base is embedded by Downloadable implementations that need none of the
// capability's optional behavior, mirroring the original trait's defaults.
type Base struct{}

func (Base) RequiresCustomDownload() bool                             { return false }
func (Base) CustomDownload(ctx context.Context, gameVersion string) error { return nil }

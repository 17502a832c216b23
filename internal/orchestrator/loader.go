package orchestrator

import (
	"context"
	"os"

	"github.com/kestrel-mc/corelaunch/internal/paths"
)

// fileLoader implements descriptor.Loader over the on-disk layout for one
// (game-version, loader, loader-version) triple. A single inheritance hop
// is all materialization ever walks, so this only needs to distinguish
// "the root descriptor being materialized" from "its vanilla parent": any
// id other than rootID is assumed to name the vanilla descriptor for
// gameVersion, which is what every upstream inheritsFrom reference
// actually points at.
type fileLoader struct {
	layout      paths.Layout
	gameVersion string
	rootID      string
	rootPath    string
}

func vanillaLoader(layout paths.Layout, gameVersion string) fileLoader {
	return fileLoader{
		layout:      layout,
		gameVersion: gameVersion,
		rootID:      gameVersion,
		rootPath:    layout.VanillaDescriptor(gameVersion),
	}
}

func moddedLoader(layout paths.Layout, gameVersion, loaderName, loaderVersion string) fileLoader {
	return fileLoader{
		layout:      layout,
		gameVersion: gameVersion,
		rootID:      "modded",
		rootPath:    layout.ModdedDescriptor(gameVersion, loaderName, loaderVersion),
	}
}

func (f fileLoader) Load(ctx context.Context, id string) ([]byte, error) {
	if id == f.rootID {
		return os.ReadFile(f.rootPath)
	}
	return os.ReadFile(f.layout.VanillaDescriptor(f.gameVersion))
}

// Package paths exposes the canonical on-disk layout for every artifact the
// launcher core reads or writes, rooted at a single base directory. Only
// Default (its portable-mode probe) and EnsureDirs (which creates the
// top-level directories) touch the filesystem; every other function is a
// pure string/path computation.
package paths

import (
	"os"
	"path/filepath"
)

// Layout roots every computed path at Base.
type Layout struct {
	Base string
}

// New returns a Layout rooted at base.
func New(base string) Layout {
	return Layout{Base: base}
}

// Default resolves the base directory the way a standalone build does:
// portable mode (an executable-relative "data" directory) wins if present,
// otherwise XDG_DATA_HOME, then the platform default.
func Default(appName string) Layout {
	return Layout{Base: defaultBaseDir(appName)}
}

func defaultBaseDir(appName string) string {
	if exe, err := os.Executable(); err == nil {
		portable := filepath.Join(filepath.Dir(exe), "data")
		if st, err := os.Stat(portable); err == nil && st.IsDir() {
			return portable
		}
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

func (l Layout) VanillaManifestCache() string {
	return filepath.Join(l.Base, "versions", "vanilla_manifest_v2.json")
}

func (l Layout) ProfilesFile() string {
	return filepath.Join(l.Base, "profiles.json")
}

func (l Layout) TokensFile() string {
	return filepath.Join(l.Base, "tokens.json")
}

func (l Layout) InstalledFile() string {
	return filepath.Join(l.Base, "installed.json")
}

// VanillaDescriptor is versions/<game-version>/vanilla.json.
func (l Layout) VanillaDescriptor(gameVersion string) string {
	return filepath.Join(l.Base, "versions", gameVersion, "vanilla.json")
}

// ModdedDescriptor is versions/<game-version>/<loader>/<loader-version>.json.
func (l Layout) ModdedDescriptor(gameVersion, loader, loaderVersion string) string {
	return filepath.Join(l.Base, "versions", gameVersion, loader, loaderVersion+".json")
}

// Descriptor dispatches between the vanilla and modded layouts.
func (l Layout) Descriptor(gameVersion, loader, loaderVersion string) string {
	if loader == "" || loader == "vanilla" {
		return l.VanillaDescriptor(gameVersion)
	}
	return l.ModdedDescriptor(gameVersion, loader, loaderVersion)
}

// BinDir is versions/<game-version>/bin/ — natives, libraries, main jar.
func (l Layout) BinDir(gameVersion string) string {
	return filepath.Join(l.Base, "versions", gameVersion, "bin")
}

func (l Layout) AssetIndexFile(assetIndexID string) string {
	return filepath.Join(l.Base, "assets", "indexes", assetIndexID+".json")
}

func (l Layout) AssetsRoot() string {
	return filepath.Join(l.Base, "assets")
}

// AssetObject is assets/objects/<hash[0:2]>/<hash>.
func (l Layout) AssetObject(assetHash string) string {
	prefix := assetHash
	if len(assetHash) >= 2 {
		prefix = assetHash[:2]
	}
	return filepath.Join(l.Base, "assets", "objects", prefix, assetHash)
}

func (l Layout) LogConfig(configID string) string {
	return filepath.Join(l.Base, "assets", "log_configs", configID)
}

// EnsureDirs creates the top-level directories this layout writes into.
func (l Layout) EnsureDirs() error {
	for _, dir := range []string{
		l.Base,
		filepath.Join(l.Base, "versions"),
		filepath.Join(l.Base, "assets", "indexes"),
		filepath.Join(l.Base, "assets", "objects"),
		filepath.Join(l.Base, "assets", "log_configs"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

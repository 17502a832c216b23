// Package installed tracks which (game-version, loader, loader-version)
// triples have already been installed, so the orchestrator can skip
// re-materializing and re-downloading a version it has already built.
package installed

import (
	"github.com/kestrel-mc/corelaunch/internal/config"
	"github.com/kestrel-mc/corelaunch/internal/loaders"
	"github.com/kestrel-mc/corelaunch/internal/paths"
)

const comment = "be advised that modifying this file may break the launcher and require you to manually verify game files!"

type entry struct {
	GameVersion   string        `json:"game_version"`
	Loader        loaders.Loader `json:"loader"`
	LoaderVersion *string       `json:"loader_version,omitempty"`
}

// Ledger is the on-disk record of installed version triples.
type Ledger struct {
	Comment   string  `json:"__comment"`
	Installed []entry `json:"installed"`
}

// Default returns an empty ledger carrying the warning comment, the
// default value written on first run.
func Default() *Ledger {
	return &Ledger{Comment: comment}
}

// Load reads the on-disk ledger, creating a default one on first run.
func Load(layout paths.Layout) (*Ledger, error) {
	l := Default()
	if err := config.LoadOrCreate(layout.InstalledFile(), true, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Save persists the ledger.
func (l *Ledger) Save(layout paths.Layout) error {
	l.Comment = comment
	return config.SaveTo(layout.InstalledFile(), true, l)
}

// optionEquals is the symmetric Option comparison the original ledger used:
// both-absent compares equal, both-present compares by value, anything else
// compares unequal.
func optionEquals(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Contains reports whether this exact triple has already been recorded.
// loaderVersion is nil for Vanilla, or for "ask me to install any version".
func (l *Ledger) Contains(gameVersion string, loader loaders.Loader, loaderVersion *string) bool {
	for _, e := range l.Installed {
		if e.Loader == loader && e.GameVersion == gameVersion && optionEquals(e.LoaderVersion, loaderVersion) {
			return true
		}
	}
	return false
}

// Add unconditionally appends a new installed-version record; it does not
// dedup against existing entries, matching the upstream ledger.
func (l *Ledger) Add(gameVersion string, loader loaders.Loader, loaderVersion *string) {
	l.Installed = append(l.Installed, entry{GameVersion: gameVersion, Loader: loader, LoaderVersion: loaderVersion})
}

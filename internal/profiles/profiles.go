// Package profiles holds the user-facing launch profiles (name, mod loader,
// per-profile memory/resolution overrides) and the small set of persistent
// launcher-wide settings, both materialized from profiles.json under the
// layout's base directory (paths.Layout.ProfilesFile).
package profiles

import (
	"math/rand"

	"github.com/kestrel-mc/corelaunch/internal/config"
	"github.com/kestrel-mc/corelaunch/internal/loaders"
	"github.com/kestrel-mc/corelaunch/internal/paths"
)

const defaultMemoryGB = 2

// Profile is one launchable configuration: which loader, which game
// version (possibly a symbolic name like "latest-release"), and any
// per-profile overrides.
type Profile struct {
	Name             string         `json:"name"`
	ID               uint64         `json:"id"`
	ModLoader        loaders.Loader `json:"mod_loader"`
	ModLoaderVersion string         `json:"mod_loader_version"`
	VersionName      string         `json:"version_name"`
	MCDirectory      string         `json:"mc_directory"`
	Icon             Icon           `json:"icon"`
	AdditionalArgs   *string        `json:"additional_args,omitempty"`
	Memory           uint16         `json:"memory,omitempty"`
	Width            *uint32        `json:"width,omitempty"`
	Height           *uint32        `json:"height,omitempty"`
}

// NewProfile builds a profile with the same defaults the launcher applies
// to a freshly created one: a random ID, no mod loader version, the
// default memory allocation, and an unset resolution override.
func NewProfile(name string, loader loaders.Loader, versionName string, icon Icon) Profile {
	return Profile{
		Name:        name,
		ID:          rand.Uint64(),
		ModLoader:   loader,
		VersionName: versionName,
		MCDirectory: "%appdata%/.minecraft/",
		Icon:        icon,
		Memory:      defaultMemoryGB,
	}
}

// Resolution returns (width, height) only when both are set; a profile
// with just one of the two overrides falls back to the default window
// size entirely, matching the original's all-or-nothing pairing.
func (p Profile) Resolution() (width, height uint32, ok bool) {
	if p.Width == nil || p.Height == nil {
		return 0, 0, false
	}
	return *p.Width, *p.Height, true
}

// LauncherSettings are the launcher-wide toggles layered under the
// selected profile.
type LauncherSettings struct {
	EnableHistorical bool `json:"enable_historical"`
	EnableSnapshots  bool `json:"enable_snapshots"`
	KeepLauncherOpen bool `json:"keep_launcher_open"`
	ReOpenLauncher   bool `json:"re_open_launcher"`
}

func defaultLauncherSettings() LauncherSettings {
	return LauncherSettings{EnableSnapshots: true}
}

// LauncherPersistentState flattens LauncherSettings alongside which profile
// is currently selected.
type LauncherPersistentState struct {
	LauncherSettings
	SelectedProfileID uint64 `json:"selected_profile_id"`
}

// LauncherProfiles is the full on-disk document: every profile plus the
// persistent settings.
type LauncherProfiles struct {
	Profiles []Profile               `json:"je_client_profiles"`
	Settings LauncherPersistentState `json:"settings"`
}

// FindProfile returns the profile with the given ID.
func (p *LauncherProfiles) FindProfile(id uint64) (*Profile, bool) {
	for i := range p.Profiles {
		if p.Profiles[i].ID == id {
			return &p.Profiles[i], true
		}
	}
	return nil, false
}

// Default is the three-starter-profile document a fresh install seeds:
// latest release, latest snapshot, and a Fabric profile tracking the
// latest release.
func Default() *LauncherProfiles {
	release := NewProfile("Latest Release", loaders.Vanilla, "latest-release", mustIcon("Grass"))
	snapshot := NewProfile("Latest Snapshot", loaders.Vanilla, "latest-snapshot", mustIcon("Crafting_Table"))
	fabric := NewProfile("Fabric", loaders.Fabric, "latest-release", mustIcon("Bookshelf"))

	return &LauncherProfiles{
		Profiles: []Profile{release, snapshot, fabric},
		Settings: LauncherPersistentState{
			LauncherSettings:  defaultLauncherSettings(),
			SelectedProfileID: release.ID,
		},
	}
}

func mustIcon(name string) Icon {
	icon, ok := NamedIcon(name)
	if !ok {
		panic("profiles: unknown built-in icon " + name)
	}
	return icon
}

// Load reads the on-disk profile document, seeding the three default
// starter profiles on first run.
func Load(layout paths.Layout) (*LauncherProfiles, error) {
	p := Default()
	if err := config.LoadOrCreate(layout.ProfilesFile(), true, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save persists the profile document.
func (p *LauncherProfiles) Save(layout paths.Layout) error {
	return config.SaveTo(layout.ProfilesFile(), true, p)
}

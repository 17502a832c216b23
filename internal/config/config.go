// Package config handles the launcher's own settings file and the generic
// load-or-create JSON persistence every other persisted document (profiles,
// tokens, installed-versions ledger) is built on.
package config

import (
	"github.com/kestrel-mc/corelaunch/internal/paths"
)

// Config holds the launcher-wide settings that are not themselves part of
// any individual profile: where things live on disk, Java overrides, and
// a Microsoft application client id. The credentials pipeline in
// internal/auth does not read MSAClientID; it uses its own fixed client id.
type Config struct {
	DataDir string `json:"dataDir"`

	JavaPath string   `json:"javaPath"`
	JVMArgs  []string `json:"jvmArgs"`

	ShowSnapshots bool `json:"showSnapshots"`

	MSAClientID string `json:"msaClientID"`
}

// DefaultMSAClientID is the fallback Azure AD application id used when a
// config file predates this field or has it blank.
const DefaultMSAClientID = "00000000-0000-0000-0000-000000000000"

// Default returns a Config with sensible defaults rooted at layout.Base.
func Default(layout paths.Layout) *Config {
	return &Config{
		DataDir:       layout.Base,
		JVMArgs:       []string{},
		ShowSnapshots: false,
		MSAClientID:   DefaultMSAClientID,
	}
}

// Path is where the settings file lives under the layout's base directory.
func Path(layout paths.Layout) string {
	return layout.Base + "/config.json"
}

// Load reads the settings file, creating it with defaults on first run.
func Load(layout paths.Layout) (*Config, error) {
	cfg := Default(layout)
	if err := LoadOrCreate(Path(layout), true, cfg); err != nil {
		return nil, err
	}
	if cfg.MSAClientID == "" {
		cfg.MSAClientID = DefaultMSAClientID
	}
	return cfg, nil
}

// Save writes the settings file back to disk.
func (c *Config) Save(layout paths.Layout) error {
	return SaveTo(Path(layout), true, c)
}

package auth

import (
	"github.com/kestrel-mc/corelaunch/internal/config"
	"github.com/kestrel-mc/corelaunch/internal/paths"
)

// Load reads the on-disk account roster, creating an empty one on first
// run, matching the load-or-create persistence pattern used across the
// config package.
func Load(layout paths.Layout) (*AccountData, error) {
	var data AccountData
	if err := config.LoadOrCreate(layout.TokensFile(), true, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Save persists the roster to its on-disk location.
func Save(layout paths.Layout, data *AccountData) error {
	return config.SaveTo(layout.TokensFile(), true, data)
}

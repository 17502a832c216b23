package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadOrCreate deserializes path into dst if it exists. If it doesn't exist,
// it writes the value already held by dst (the caller's default)
// pretty-printed iff pretty is true, creating parent directories as needed,
// and returns without error — dst remains the default.
//
// A malformed existing file is a fatal error: config corruption is not
// recovered at this layer.
func LoadOrCreate(path string, pretty bool, dst any) error {
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return SaveTo(path, pretty, dst)
	case err != nil:
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("config: %s is corrupt: %w", path, err)
	}
	return nil
}

// SaveTo is the symmetric writer: marshal v (pretty-printed iff pretty),
// creating parent directories, and write to path.
func SaveTo(path string, pretty bool, v any) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("config: marshaling %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Quotes []string    `toml:"quotes"`
	Paths  PathsConfig `toml:"paths"`
	Sound  SoundConfig `toml:"sound"`
	Tiers  []TierEntry `toml:"tiers"`
}

// PathsConfig maps storage locations.
type PathsConfig struct {
	Log         *string `toml:"log"`
	Report      *string `toml:"report"`
	Charts      *string `toml:"charts"`
	Diagnostics *string `toml:"diagnostics"`
}

// SoundConfig maps audio settings.
type SoundConfig struct {
	File   *string `toml:"file"`
	Player *string `toml:"player"`
	GapMs  *int    `toml:"gap-ms"`
}

// TierEntry maps one [[tiers]] table.
type TierEntry struct {
	Name  string  `toml:"name"`
	Score *int    `toml:"score"`
	Glyph *string `toml:"glyph"`
	Plays *int    `toml:"plays"`
	Color *string `toml:"color"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

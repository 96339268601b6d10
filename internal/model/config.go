package model

import (
	"path/filepath"
	"time"
)

// Config is the resolved, immutable runtime configuration.
type Config struct {
	LogPath        string
	ReportPath     string
	ChartDir       string
	DiagnosticsLog string
	Tiers          TierTable
	Quotes         []string
	Sound          SoundConfig
}

// SoundConfig controls audio feedback.
type SoundConfig struct {
	File   string
	Player string
	Gap    time.Duration
}

// StorageDirs returns the distinct directories the tracker writes into.
func (c Config) StorageDirs() []string {
	candidates := []string{filepath.Dir(c.LogPath), filepath.Dir(c.ReportPath), c.ChartDir}
	seen := make(map[string]struct{}, len(candidates))
	dirs := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		dir = filepath.Clean(dir)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

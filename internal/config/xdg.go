// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "didit"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultLogPath returns the default path of the append-only activity log.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appName, "productivity_raw.csv")
}

// DefaultReportPath returns the default HTML report path.
func DefaultReportPath() string {
	return filepath.Join(XDGDataHome(), appName, "productivity_log.html")
}

// DefaultChartDir returns the default directory for chart images.
func DefaultChartDir() string {
	return filepath.Join(XDGDataHome(), appName, "charts")
}

// DefaultDiagnosticsPath returns the default diagnostics log file.
func DefaultDiagnosticsPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

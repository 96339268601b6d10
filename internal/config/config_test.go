package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/didit/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Paths.Log != nil || len(cfg.Tiers) != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `quotes = ["Keep going."]

[paths]
log = "/tmp/didit/log.csv"

[sound]
gap-ms = 50

[[tiers]]
name = "easy"

[[tiers]]
name = "epic"
score = 8
glyph = "🚀"
plays = 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	file, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg, err := Resolve(file, Overrides{ChartDir: "/tmp/didit/charts"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.LogPath != "/tmp/didit/log.csv" {
		t.Fatalf("unexpected log path %q", cfg.LogPath)
	}
	if cfg.ChartDir != "/tmp/didit/charts" {
		t.Fatalf("expected override chart dir, got %q", cfg.ChartDir)
	}
	if cfg.Sound.Gap != 50*time.Millisecond {
		t.Fatalf("unexpected gap %v", cfg.Sound.Gap)
	}
	if len(cfg.Quotes) != 1 || cfg.Quotes[0] != "Keep going." {
		t.Fatalf("unexpected quotes %v", cfg.Quotes)
	}
	if got := cfg.Tiers.Names(); len(got) != 2 || got[0] != "easy" || got[1] != "epic" {
		t.Fatalf("unexpected tiers %v", got)
	}
	easy, _ := cfg.Tiers.Lookup("easy")
	if easy.Score != 1 || easy.Plays != 1 || easy.Glyph != "🌱" {
		t.Fatalf("expected easy to inherit defaults, got %+v", easy)
	}
	epic, _ := cfg.Tiers.Lookup("epic")
	if epic.Score != 8 || epic.Plays != 4 || epic.Glyph != "🚀" {
		t.Fatalf("unexpected epic tier %+v", epic)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\nlogfile = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	cfg, err := Resolve(FileConfig{}, Overrides{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.LogPath != filepath.Join("/data", "didit", "productivity_raw.csv") {
		t.Fatalf("unexpected log path %q", cfg.LogPath)
	}
	if cfg.DiagnosticsLog != filepath.Join("/state", "didit", "didit.log") {
		t.Fatalf("unexpected diagnostics path %q", cfg.DiagnosticsLog)
	}
	if cfg.Tiers.Len() != 3 {
		t.Fatalf("expected 3 default tiers, got %d", cfg.Tiers.Len())
	}
	hard, _ := cfg.Tiers.Lookup("hard")
	if hard.Score != 5 || hard.Plays != 3 {
		t.Fatalf("unexpected hard tier %+v", hard)
	}
	if len(cfg.Quotes) == 0 {
		t.Fatalf("expected default quotes")
	}
}

func TestResolveRejectsUnknownTierWithoutScore(t *testing.T) {
	_, err := Resolve(FileConfig{Tiers: []TierEntry{{Name: "legendary"}}}, Overrides{})
	if err == nil {
		t.Fatalf("expected missing score error")
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	cfg := model.Config{
		LogPath:    filepath.Join(root, "data", "log.csv"),
		ReportPath: filepath.Join(root, "data", "report.html"),
		ChartDir:   filepath.Join(root, "charts"),
	}
	if err := EnsureDirs(cfg); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	for _, dir := range []string{filepath.Join(root, "data"), filepath.Join(root, "charts")} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s", dir)
		}
	}
}

func TestEnsureDirsReportsSetupError(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	cfg := model.Config{
		LogPath:    filepath.Join(blocker, "log.csv"),
		ReportPath: filepath.Join(root, "report.html"),
		ChartDir:   filepath.Join(root, "charts"),
	}
	err := EnsureDirs(cfg)
	var setupErr *model.DirectorySetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("expected DirectorySetupError, got %v", err)
	}
	if setupErr.Dir != blocker {
		t.Fatalf("unexpected dir %q", setupErr.Dir)
	}
}

func TestDefaultTemplateDecodes(t *testing.T) {
	var cfg FileConfig
	if _, err := toml.Decode(DefaultTemplate(), &cfg); err != nil {
		t.Fatalf("template should be valid TOML: %v", err)
	}
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/verte-zerg/didit/internal/model"
)

// DefaultSoundGap is the pause between repeated plays of the sound.
const DefaultSoundGap = 200 * time.Millisecond

// DefaultTiers returns the built-in tier definitions.
func DefaultTiers() []model.Tier {
	return []model.Tier{
		{Name: "easy", Score: 1, Glyph: "🌱", Plays: 1, Color: "#8BC34A"},
		{Name: "medium", Score: 3, Glyph: "⚡", Plays: 2, Color: "#FFC107"},
		{Name: "hard", Score: 5, Glyph: "🔥", Plays: 3, Color: "#F44336"},
	}
}

// DefaultQuotes returns the built-in motivational messages.
func DefaultQuotes() []string {
	return []string{
		"The best way to predict the future is to create it. – Peter Drucker",
		"Believe you can and you're halfway there. – Theodore Roosevelt",
		"The only way to do great work is to love what you do. – Steve Jobs",
		"Success is not final, failure is not fatal: It is the courage to continue that counts. – Winston S. Churchill",
		"Your limitation—it's only your imagination.",
		"Push yourself, because no one else is going to do it for you.",
		"Great things never come from comfort zones.",
		"Dream it. Wish it. Do it.",
		"Success doesn't just find you. You have to go out and get it.",
		"The harder you work for something, the greater you'll feel when you achieve it.",
		"Don't stop when you're tired. Stop when you're done.",
		"Wake up with determination. Go to bed with satisfaction.",
		"Do something today that your future self will thank you for.",
		"Little things make big days.",
		"It's going to be hard, but hard does not mean impossible.",
		"Don't wait for opportunity. Create it.",
	}
}

// Overrides carries values that take precedence over the file config,
// typically command-line flags. Empty strings are ignored.
type Overrides struct {
	LogPath    string
	ReportPath string
	ChartDir   string
}

// Resolve merges defaults, the file config and overrides into a validated model.Config.
func Resolve(file FileConfig, over Overrides) (model.Config, error) {
	cfg := model.Config{
		LogPath:        DefaultLogPath(),
		ReportPath:     DefaultReportPath(),
		ChartDir:       DefaultChartDir(),
		DiagnosticsLog: DefaultDiagnosticsPath(),
		Quotes:         DefaultQuotes(),
		Sound:          model.SoundConfig{Gap: DefaultSoundGap},
	}

	applyString(&cfg.LogPath, file.Paths.Log)
	applyString(&cfg.ReportPath, file.Paths.Report)
	applyString(&cfg.ChartDir, file.Paths.Charts)
	applyString(&cfg.DiagnosticsLog, file.Paths.Diagnostics)
	applyString(&cfg.Sound.File, file.Sound.File)
	applyString(&cfg.Sound.Player, file.Sound.Player)
	if file.Sound.GapMs != nil {
		if *file.Sound.GapMs < 0 {
			return model.Config{}, fmt.Errorf("sound.gap-ms must be >= 0")
		}
		cfg.Sound.Gap = time.Duration(*file.Sound.GapMs) * time.Millisecond
	}
	if file.Quotes != nil {
		cfg.Quotes = nonEmpty(file.Quotes)
	}

	if over.LogPath != "" {
		cfg.LogPath = over.LogPath
	}
	if over.ReportPath != "" {
		cfg.ReportPath = over.ReportPath
	}
	if over.ChartDir != "" {
		cfg.ChartDir = over.ChartDir
	}

	tiers := DefaultTiers()
	if len(file.Tiers) > 0 {
		var err error
		tiers, err = tiersFromFile(file.Tiers)
		if err != nil {
			return model.Config{}, err
		}
	}
	table, err := model.NewTierTable(tiers)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid tiers: %w", err)
	}
	cfg.Tiers = table

	for name, value := range map[string]string{
		"paths.log":    cfg.LogPath,
		"paths.report": cfg.ReportPath,
		"paths.charts": cfg.ChartDir,
	} {
		if strings.TrimSpace(value) == "" {
			return model.Config{}, fmt.Errorf("%s must not be empty", name)
		}
	}
	return cfg, nil
}

// EnsureDirs creates every storage directory the configuration writes into.
func EnsureDirs(cfg model.Config) error {
	for _, dir := range cfg.StorageDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &model.DirectorySetupError{Dir: dir, Err: err}
		}
	}
	return nil
}

func tiersFromFile(entries []TierEntry) ([]model.Tier, error) {
	defaults := map[string]model.Tier{}
	for _, t := range DefaultTiers() {
		defaults[t.Name] = t
	}
	tiers := make([]model.Tier, 0, len(entries))
	for i, entry := range entries {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if name == "" {
			return nil, fmt.Errorf("tiers[%d]: name is required", i)
		}
		tier, known := defaults[name]
		tier.Name = name
		if entry.Score != nil {
			tier.Score = *entry.Score
		} else if !known {
			return nil, fmt.Errorf("tier %q: score is required", name)
		}
		if entry.Glyph != nil {
			tier.Glyph = *entry.Glyph
		}
		if entry.Plays != nil {
			tier.Plays = *entry.Plays
		} else if !known {
			tier.Plays = 1
		}
		if entry.Color != nil {
			tier.Color = *entry.Color
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

func applyString(target *string, value *string) {
	if value == nil {
		return
	}
	*target = *value
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// DefaultTemplate returns a commented config file describing every option.
func DefaultTemplate() string {
	var b strings.Builder
	b.WriteString(`# didit configuration
# Uncomment a value to enable it. CLI flags override config values.

# quotes = ["Little things make big days."]

[paths]
`)
	fmt.Fprintf(&b, "# log = %q\n", DefaultLogPath())
	fmt.Fprintf(&b, "# report = %q\n", DefaultReportPath())
	fmt.Fprintf(&b, "# charts = %q\n", DefaultChartDir())
	fmt.Fprintf(&b, "# diagnostics = %q\n", DefaultDiagnosticsPath())
	b.WriteString(`
[sound]
# file = "/path/to/coin.mp3"   # Empty rings the terminal bell
# player = "mpv --no-video"    # Default: first of mpv, ffplay, afplay, mpg123 (paplay, aplay for .wav)
`)
	fmt.Fprintf(&b, "# gap-ms = %d                 # Pause between repeated plays\n", DefaultSoundGap.Milliseconds())
	for _, t := range DefaultTiers() {
		fmt.Fprintf(&b, "\n# [[tiers]]\n# name = %q\n# score = %d\n# glyph = %q\n# plays = %d\n# color = %q\n",
			t.Name, t.Score, t.Glyph, t.Plays, t.Color)
	}
	return b.String()
}

// Package tracker runs the record, aggregate, chart and report pipeline.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/verte-zerg/didit/internal/charts"
	"github.com/verte-zerg/didit/internal/journal"
	"github.com/verte-zerg/didit/internal/model"
	"github.com/verte-zerg/didit/internal/quote"
	"github.com/verte-zerg/didit/internal/report"
	"github.com/verte-zerg/didit/internal/stats"
)

// AudioPlayer plays the cue for a recorded task.
type AudioPlayer interface {
	Play(ctx context.Context, times int) error
}

// ChartRenderer produces chart PNG bytes.
type ChartRenderer interface {
	charts.Source
}

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a message for the user.
type Notice struct {
	Level Level
	Title string
	Body  string
}

// UserInteraction shows notices to the user.
type UserInteraction interface {
	Notify(Notice)
}

// Options wires the tracker's collaborators. Nil fields get quiet defaults.
type Options struct {
	Audio  AudioPlayer
	Charts ChartRenderer
	UI     UserInteraction
	Quotes *quote.Picker
	Logger *slog.Logger
	Now    func() time.Time
}

// Tracker owns one configured pipeline.
type Tracker struct {
	cfg      model.Config
	recorder *journal.Recorder
	audio    AudioPlayer
	charts   ChartRenderer
	ui       UserInteraction
	quotes   *quote.Picker
	logger   *slog.Logger
	now      func() time.Time
}

// Summary describes one report regeneration.
type Summary struct {
	Today      string
	Entries    []model.Entry
	Totals     map[string]int
	TodayTotal int
	Charts     map[charts.Kind]string
	Problems   []*model.ParseError
	// Warnings holds non-fatal failures: read, chart and embed errors.
	Warnings   []error
	ReportPath string
}

// Result describes one recorded task.
type Result struct {
	Entry   model.Entry
	Tier    model.Tier
	Message string
	Quote   string
	Summary Summary
}

// New returns a Tracker for cfg.
func New(cfg model.Config, opts Options) *Tracker {
	t := &Tracker{
		cfg:    cfg,
		audio:  opts.Audio,
		charts: opts.Charts,
		ui:     opts.UI,
		quotes: opts.Quotes,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.logger == nil {
		t.logger = slog.New(slog.DiscardHandler)
	}
	if t.charts == nil {
		t.charts = charts.NewRenderer(cfg.Tiers)
	}
	if t.quotes == nil {
		t.quotes = quote.New(cfg.Quotes)
	}
	t.recorder = journal.NewRecorder(cfg.LogPath, cfg.Tiers).WithClock(t.now)
	return t
}

// Log records a task for tierName, plays its cue, regenerates the report and
// announces the result. A failed write stops the action before anything else
// happens.
func (t *Tracker) Log(ctx context.Context, tierName string) (Result, error) {
	tier, ok := t.cfg.Tiers.Lookup(tierName)
	if !ok {
		err := fmt.Errorf("unknown tier %q (known: %s)", tierName, strings.Join(t.cfg.Tiers.Names(), ", "))
		t.notify(Notice{Level: LevelError, Title: "Unknown Tier", Body: err.Error()})
		return Result{}, err
	}
	entry, err := t.recorder.Record(tier.Name)
	if err != nil {
		t.logger.Error("failed to record task", "tier", tier.Name, "path", t.cfg.LogPath, "err", err)
		t.notify(Notice{
			Level: LevelError,
			Title: "File Write Error",
			Body:  fmt.Sprintf("Could not log the task.\n%v\nCheck permissions for %s.", err, t.cfg.LogPath),
		})
		return Result{}, err
	}
	t.logger.Info("task recorded", "tier", entry.Tier, "score", entry.Score, "date", entry.Date, "time", entry.Time)

	if t.audio != nil {
		if err := t.audio.Play(ctx, tier.Plays); err != nil {
			t.logger.Warn("sound playback failed", "err", err)
			t.notify(Notice{Level: LevelWarning, Title: "Sound Error", Body: fmt.Sprintf("Could not play sound: %v", err)})
		}
	}

	summary, err := t.Refresh(ctx)
	res := Result{
		Entry:   entry,
		Tier:    tier,
		Message: Message(entry),
		Quote:   t.quotes.Pick(),
		Summary: summary,
	}
	if err != nil {
		return res, err
	}
	t.notify(Notice{Level: LevelInfo, Title: "✅ Task Logged!", Body: res.Message + "\n\n\"" + res.Quote + "\""})
	return res, nil
}

// Message is the confirmation line for a recorded entry.
func Message(e model.Entry) string {
	return fmt.Sprintf("%s [%s %s] %s task — +%d points! 🏆", e.Glyph, e.Date, e.Time, strings.ToUpper(e.Tier), e.Score)
}

// Read loads the log, logging every skipped line. A read failure is returned
// with an empty log.
func (t *Tracker) Read() (journal.Log, error) {
	log, err := journal.Read(t.cfg.LogPath, t.cfg.Tiers)
	if err != nil {
		t.logger.Error("failed to read log", "path", t.cfg.LogPath, "err", err)
		return journal.Log{Totals: map[string]int{}}, err
	}
	for _, p := range log.Problems {
		t.logger.Warn("skipped log line", "line", p.Line, "reason", p.Reason, "text", p.Text)
	}
	return log, nil
}

// Refresh regenerates the charts and the report from the log. Only a failure
// to write the report is returned; everything else degrades and is reported in
// Summary.Warnings.
func (t *Tracker) Refresh(ctx context.Context) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	now := t.now()
	today := now.Format(model.DateLayout)
	summary := Summary{Today: today, ReportPath: t.cfg.ReportPath}

	log, err := t.Read()
	if err != nil {
		summary.Warnings = append(summary.Warnings, err)
		t.notify(Notice{Level: LevelError, Title: "File Read Error", Body: fmt.Sprintf("An error occurred while reading %s.\n%v", t.cfg.LogPath, err)})
	}
	summary.Entries = log.Entries
	summary.Totals = log.Totals
	summary.Problems = log.Problems
	summary.TodayTotal = log.Totals[today]

	switch {
	case err != nil:
	case !log.Exists:
		t.notify(Notice{
			Level: LevelInfo,
			Title: "No Data File Yet",
			Body:  fmt.Sprintf("The productivity log %s was not found.\nLog your first task to create it and start tracking!", t.cfg.LogPath),
		})
	case len(log.Entries) == 0:
		t.notify(Notice{
			Level: LevelWarning,
			Title: "No Usable Data Found",
			Body: fmt.Sprintf("The log %s exists but contains no valid productivity data.\n"+
				"To fix this, delete the file and log a new task to start a clean log.", t.cfg.LogPath),
		})
	}

	todays := stats.EntriesOn(log.Entries, today)
	paths, errs := charts.Generate(t.charts, t.cfg.ChartDir, today, todays, stats.SortedTotals(log.Totals))
	for _, err := range errs {
		t.logger.Warn("chart skipped", "err", err)
	}
	summary.Charts = paths
	summary.Warnings = append(summary.Warnings, errs...)

	embedded, embedErrs := report.EmbedCharts(paths)
	for _, err := range embedErrs {
		t.logger.Warn("chart not embedded", "err", err)
	}
	summary.Warnings = append(summary.Warnings, embedErrs...)

	data := report.Data{
		Today:       today,
		GeneratedAt: now,
		Entries:     log.Entries,
		Totals:      log.Totals,
		Charts:      embedded,
	}
	if err := report.Write(t.cfg.ReportPath, data); err != nil {
		t.logger.Error("failed to write report", "path", t.cfg.ReportPath, "err", err)
		t.notify(Notice{Level: LevelError, Title: "File Write Error", Body: fmt.Sprintf("Could not write the report.\n%v", err)})
		return summary, err
	}
	t.logger.Info("report written", "path", t.cfg.ReportPath, "entries", len(log.Entries), "warnings", len(summary.Warnings))
	return summary, nil
}

func (t *Tracker) notify(n Notice) {
	if t.ui != nil {
		t.ui.Notify(n)
	}
}

// Package main provides the CLI entrypoint for didit.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/didit/internal/config"
	"github.com/verte-zerg/didit/internal/logging"
	"github.com/verte-zerg/didit/internal/model"
	"github.com/verte-zerg/didit/internal/sound"
	"github.com/verte-zerg/didit/internal/stats"
	"github.com/verte-zerg/didit/internal/store"
	"github.com/verte-zerg/didit/internal/tracker"
	"github.com/verte-zerg/didit/internal/tui"
)

const defaultTermWidth = 80

var (
	logPathFlag    string
	reportPathFlag string
	chartDirFlag   string
	verboseFlag    bool

	logQuiet bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "didit",
		Short:         "Log finished tasks and track daily productivity",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTUICmd,
	}

	rootCmd.PersistentFlags().StringVar(&logPathFlag, "log", "", "productivity log file (default: $XDG_DATA_HOME/didit/productivity_raw.csv)")
	rootCmd.PersistentFlags().StringVar(&reportPathFlag, "report", "", "HTML report file")
	rootCmd.PersistentFlags().StringVar(&chartDirFlag, "charts", "", "chart output directory")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "also write diagnostics to stderr")

	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newSQLCmd())
	rootCmd.AddCommand(newTiersCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

type app struct {
	cfg    model.Config
	logger *slog.Logger
	closer io.Closer
}

func (a *app) Close() {
	if err := a.closer.Close(); err != nil {
		logErrf("failed to close diagnostics log: %v\n", err)
	}
}

// setup loads and validates the configuration, creates the storage
// directories and opens the diagnostics log.
func setup(console bool) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := config.Resolve(fileCfg, config.Overrides{
		LogPath:    logPathFlag,
		ReportPath: reportPathFlag,
		ChartDir:   chartDirFlag,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := config.EnsureDirs(cfg); err != nil {
		return nil, err
	}

	opts := logging.Options{Path: cfg.DiagnosticsLog, Level: slog.LevelInfo}
	if verboseFlag {
		opts.Level = slog.LevelDebug
		if console {
			opts.Console = os.Stderr
			opts.ConsoleLevel = slog.LevelDebug
		}
	}
	logger, closer, err := logging.Setup(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open diagnostics log: %w", err)
	}
	logger.Debug("config resolved", "log", cfg.LogPath, "report", cfg.ReportPath, "charts", cfg.ChartDir, "tiers", strings.Join(cfg.Tiers.Names(), ","))
	return &app{cfg: cfg, logger: logger, closer: closer}, nil
}

func runTUICmd(_ *cobra.Command, _ []string) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.Close()

	notifier := &tui.Notifier{}
	tr := tracker.New(a.cfg, tracker.Options{
		Audio:  sound.New(a.cfg.Sound, os.Stderr),
		UI:     notifier,
		Logger: a.logger,
	})
	m := tui.NewModel(tr, a.cfg.Tiers)
	program := tea.NewProgram(m, tea.WithAltScreen())
	notifier.Attach(program)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// consoleUI prints notices at or above min to stderr. Errors reach the user
// as the command's returned error.
type consoleUI struct {
	w   io.Writer
	min tracker.Level
}

func (c consoleUI) Notify(n tracker.Notice) {
	if n.Level == tracker.LevelError || n.Level < c.min {
		return
	}
	if _, err := fmt.Fprintf(c.w, "%s: %s\n", n.Title, n.Body); err != nil {
		// Best-effort notice output.
		_ = err
	}
}

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <tier>",
		Short: "Record a finished task",
		Args:  cobra.ExactArgs(1),
		RunE:  runLogCmd,
	}
	cmd.Flags().BoolVarP(&logQuiet, "quiet", "q", false, "do not play a sound")
	return cmd
}

func runLogCmd(cmd *cobra.Command, args []string) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.Close()

	// The confirmation goes to stdout below, so only warnings are echoed.
	opts := tracker.Options{UI: consoleUI{w: os.Stderr, min: tracker.LevelWarning}, Logger: a.logger}
	if !logQuiet {
		opts.Audio = sound.New(a.cfg.Sound, os.Stderr)
	}
	tr := tracker.New(a.cfg, opts)
	res, err := tr.Log(context.Background(), args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, res.Message); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if res.Quote != "" {
		if _, err := fmt.Fprintf(out, "%q\n", res.Quote); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Regenerate charts and the HTML report",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.Close()

	tr := tracker.New(a.cfg, tracker.Options{UI: consoleUI{w: os.Stderr}, Logger: a.logger})
	summary, err := tr.Refresh(context.Background())
	if err != nil {
		return err
	}
	for _, p := range summary.Problems {
		logErrf("skipped %v\n", p)
	}
	for _, w := range summary.Warnings {
		logErrf("warning: %v\n", w)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d entries, %d points today)\n",
		summary.ReportPath, len(summary.Entries), summary.TodayTotal); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's tasks and recent daily totals",
		Args:  cobra.NoArgs,
		RunE:  runTodayCmd,
	}
}

func runTodayCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.Close()

	tr := tracker.New(a.cfg, tracker.Options{Logger: a.logger})
	log, err := tr.Read()
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	if len(log.Problems) > 0 {
		logErrf("skipped %d malformed line(s) in %s\n", len(log.Problems), a.cfg.LogPath)
	}
	today := time.Now().Format(model.DateLayout)
	if err := stats.RenderToday(cmd.OutOrStdout(), today, log.Entries, log.Totals, terminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

func newSQLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sql [query]",
		Short: "Run a read-only SQL query over the log (table: entries)",
		Long: `Loads the log into an in-memory SQLite table and runs a query.

Columns: id, date, time, minutes, tier, score, glyph, source.
Without a query, prints the per-tier breakdown.`,
		RunE: runSQLCmd,
	}
}

func runSQLCmd(cmd *cobra.Command, args []string) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.Close()

	tr := tracker.New(a.cfg, tracker.Options{Logger: a.logger})
	log, err := tr.Read()
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}

	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if err := st.Load(ctx, log.Entries); err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	var res store.Result
	if query := strings.TrimSpace(strings.Join(args, " ")); query != "" {
		res, err = st.Query(ctx, query)
	} else {
		res, err = breakdownResult(ctx, st)
	}
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(res.Rows) == 0 {
		_, err := fmt.Fprintln(out, "(no rows)")
		return err
	}
	rightAlign := map[int]bool{}
	for i := range res.Columns {
		numeric := true
		for _, row := range res.Rows {
			if _, err := strconv.ParseFloat(row[i], 64); err != nil {
				numeric = false
				break
			}
		}
		rightAlign[i] = numeric
	}
	for _, line := range stats.FormatTable(res.Columns, res.Rows, rightAlign) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func breakdownResult(ctx context.Context, st *store.Store) (store.Result, error) {
	totals, err := st.TierBreakdown(ctx)
	if err != nil {
		return store.Result{}, err
	}
	res := store.Result{Columns: []string{"tier", "tasks", "points"}}
	for _, tt := range totals {
		res.Rows = append(res.Rows, []string{tt.Tier, strconv.Itoa(tt.Tasks), strconv.Itoa(tt.Points)})
	}
	return res, nil
}

func newTiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "List configured task tiers",
		Args:  cobra.NoArgs,
		RunE:  runTiersCmd,
	}
}

func runTiersCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := config.Resolve(fileCfg, config.Overrides{})
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	rows := make([][]string, 0, cfg.Tiers.Len())
	for i, t := range cfg.Tiers.All() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Name,
			strconv.Itoa(t.Score),
			t.Glyph,
			strconv.Itoa(t.Plays),
			t.Color,
		})
	}
	for _, line := range stats.FormatTable([]string{"#", "Tier", "Points", "Glyph", "Plays", "Color"}, rows, map[int]bool{0: true, 2: true, 4: true}) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

package charts

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/didit/internal/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testTiers(t *testing.T) model.TierTable {
	t.Helper()
	tiers, err := model.NewTierTable([]model.Tier{
		{Name: "easy", Score: 1, Glyph: "🌱", Plays: 1, Color: "#8BC34A"},
		{Name: "hard", Score: 5, Glyph: "🔥", Plays: 3, Color: "#F44336"},
	})
	if err != nil {
		t.Fatalf("tiers: %v", err)
	}
	return tiers
}

func todayEntries() []model.Entry {
	return []model.Entry{
		{Date: "2025-03-04", Time: "09:15 AM", Tier: "easy", Score: 1},
		{Date: "2025-03-04", Time: "02:45 PM", Tier: "hard", Score: 5},
		{Date: "2025-03-04", Time: "04:00 PM", Tier: "mystery", Score: 2},
	}
}

func assertPNG(t *testing.T, name string, data []byte, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatalf("%s: output is not a PNG", name)
	}
}

func TestRendererProducesPNG(t *testing.T) {
	r := NewRenderer(testTiers(t))
	data, err := r.Trend("2025-03-04", todayEntries())
	assertPNG(t, "trend", data, err)
	data, err = r.Breakdown("2025-03-04", todayEntries())
	assertPNG(t, "breakdown", data, err)
	data, err = r.Comparison([]model.DailyTotal{{Date: "2025-03-03", Total: 4}, {Date: "2025-03-04", Total: 8}})
	assertPNG(t, "comparison", data, err)
}

func TestRendererSingleEntry(t *testing.T) {
	r := NewRenderer(testTiers(t))
	single := todayEntries()[:1]
	data, err := r.Trend("2025-03-04", single)
	assertPNG(t, "trend", data, err)
	data, err = r.Breakdown("2025-03-04", single)
	assertPNG(t, "breakdown", data, err)
	data, err = r.Comparison([]model.DailyTotal{{Date: "2025-03-04", Total: 0}})
	assertPNG(t, "comparison", data, err)
}

func TestRendererEmptyUsesPlaceholder(t *testing.T) {
	r := NewRenderer(testTiers(t))
	data, err := r.Trend("2025-03-04", nil)
	assertPNG(t, "trend", data, err)
	data, err = r.Breakdown("2025-03-04", nil)
	assertPNG(t, "breakdown", data, err)
	data, err = r.Comparison(nil)
	assertPNG(t, "comparison", data, err)
}

func TestScoreTicksStartAtZero(t *testing.T) {
	ticks := scoreTicks(0)
	if ticks[0].Value != 0 || ticks[len(ticks)-1].Value <= 0 {
		t.Fatalf("unexpected ticks %+v", ticks)
	}
	ticks = scoreTicks(40)
	if last := ticks[len(ticks)-1].Value; last < 40 {
		t.Fatalf("top tick %v below max value", last)
	}
	if len(ticks) > 12 {
		t.Fatalf("too many ticks: %d", len(ticks))
	}
}

func TestFileNames(t *testing.T) {
	cases := map[Kind]string{
		KindTrend:      "productivity_trend_chart_2025-03-04.png",
		KindBreakdown:  "today_productivity_chart_2025-03-04.png",
		KindComparison: "all_days_comparison_chart_2025-03-04.png",
	}
	for kind, want := range cases {
		if got := FileName(kind, "2025-03-04"); got != want {
			t.Fatalf("%s: got %q want %q", kind, got, want)
		}
	}
}

type stubSource struct {
	failBreakdown bool
}

func (s stubSource) Trend(string, []model.Entry) ([]byte, error) { return []byte("trend"), nil }

func (s stubSource) Breakdown(string, []model.Entry) ([]byte, error) {
	if s.failBreakdown {
		return nil, errors.New("boom")
	}
	return []byte("breakdown"), nil
}

func (s stubSource) Comparison([]model.DailyTotal) ([]byte, error) { return []byte("comparison"), nil }

func TestGenerateWritesAllCharts(t *testing.T) {
	dir := t.TempDir()
	paths, errs := Generate(stubSource{}, dir, "2025-03-04", nil, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, kind := range Kinds {
		want := filepath.Join(dir, FileName(kind, "2025-03-04"))
		if paths[kind] != want {
			t.Fatalf("%s: got path %q want %q", kind, paths[kind], want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
	}
}

func TestGenerateContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	paths, errs := Generate(stubSource{failBreakdown: true}, dir, "2025-03-04", nil, nil)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	var renderErr *model.RenderError
	if !errors.As(errs[0], &renderErr) || renderErr.Artifact != FileName(KindBreakdown, "2025-03-04") {
		t.Fatalf("unexpected error %v", errs[0])
	}
	if _, ok := paths[KindBreakdown]; ok {
		t.Fatalf("failed chart must not report a path")
	}
	if paths[KindTrend] == "" || paths[KindComparison] == "" {
		t.Fatalf("remaining charts should be written: %v", paths)
	}
}

func TestGenerateUnwritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	paths, errs := Generate(stubSource{}, dir, "2025-03-04", nil, nil)
	if len(errs) != len(Kinds) || len(paths) != 0 {
		t.Fatalf("expected every chart to fail, got paths=%v errs=%v", paths, errs)
	}
}

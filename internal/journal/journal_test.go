package journal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/didit/internal/model"
)

func testTiers(t *testing.T) model.TierTable {
	t.Helper()
	table, err := model.NewTierTable([]model.Tier{
		{Name: "easy", Score: 1, Glyph: "🌱", Plays: 1},
		{Name: "medium", Score: 3, Glyph: "⚡", Plays: 2},
		{Name: "hard", Score: 5, Glyph: "🔥", Plays: 3},
	})
	if err != nil {
		t.Fatalf("tier table: %v", err)
	}
	return table
}

func fixedClock(ts string) func() time.Time {
	parsed, err := time.ParseInLocation("2006-01-02 15:04", ts, time.Local)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return parsed }
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatalf("read log: %v", err)
	}
	return bytes.Count(data, []byte("\n"))
}

func TestRecordAppendsOneLinePerTier(t *testing.T) {
	tiers := testTiers(t)
	path := filepath.Join(t.TempDir(), "log.csv")
	rec := NewRecorder(path, tiers).WithClock(fixedClock("2025-03-04 14:15"))

	for _, tier := range tiers.All() {
		beforeLines := countLines(t, path)
		before, err := Read(path, tiers)
		if err != nil {
			t.Fatalf("read before: %v", err)
		}
		if _, err := rec.Record(tier.Name); err != nil {
			t.Fatalf("record %s: %v", tier.Name, err)
		}
		if got := countLines(t, path); got != beforeLines+1 {
			t.Fatalf("expected %d lines after %s, got %d", beforeLines+1, tier.Name, got)
		}
		after, err := Read(path, tiers)
		if err != nil {
			t.Fatalf("read after: %v", err)
		}
		if diff := after.Totals["2025-03-04"] - before.Totals["2025-03-04"]; diff != tier.Score {
			t.Fatalf("expected total to grow by %d for %s, got %d", tier.Score, tier.Name, diff)
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	tiers := testTiers(t)
	path := filepath.Join(t.TempDir(), "log.csv")
	rec := NewRecorder(path, tiers)

	var written []model.Entry
	for i, clock := range []string{"2025-03-04 09:00", "2025-03-04 13:00", "2025-03-05 00:05"} {
		rec.WithClock(fixedClock(clock))
		entry, err := rec.Record(tiers.Names()[i])
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		written = append(written, entry)
	}

	log, err := Read(path, tiers)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(log.Problems) != 0 {
		t.Fatalf("unexpected problems: %v", log.Problems)
	}
	if len(log.Entries) != len(written) {
		t.Fatalf("expected %d entries, got %d", len(written), len(log.Entries))
	}
	for i, got := range log.Entries {
		want := written[i]
		if got.Date != want.Date || got.Time != want.Time || got.Tier != want.Tier || got.Score != want.Score {
			t.Fatalf("entry %d mismatch: got %+v want %+v", i, got, want)
		}
	}
	if log.Entries[1].Time != "01:00 PM" {
		t.Fatalf("expected 12-hour time, got %q", log.Entries[1].Time)
	}
	if log.Entries[2].Time != "12:05 AM" {
		t.Fatalf("expected midnight hour as 12, got %q", log.Entries[2].Time)
	}
}

func TestRecordExampleDailyTotal(t *testing.T) {
	tiers := testTiers(t)
	path := filepath.Join(t.TempDir(), "log.csv")
	rec := NewRecorder(path, tiers)
	rec.WithClock(fixedClock("2025-03-04 10:30"))
	if _, err := rec.Record("easy"); err != nil {
		t.Fatalf("record easy: %v", err)
	}
	rec.WithClock(fixedClock("2025-03-04 08:15"))
	if _, err := rec.Record("medium"); err != nil {
		t.Fatalf("record medium: %v", err)
	}
	log, err := Read(path, tiers)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if log.Totals["2025-03-04"] != 4 {
		t.Fatalf("expected total 4, got %d", log.Totals["2025-03-04"])
	}
}

func TestRecordUnknownTierWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	rec := NewRecorder(path, testTiers(t))
	if _, err := rec.Record("legendary"); err == nil {
		t.Fatalf("expected unknown tier error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, stat err=%v", err)
	}
}

func TestRecordWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "log.csv")
	rec := NewRecorder(path, testTiers(t))
	_, err := rec.Record("easy")
	var writeErr *model.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if writeErr.Path != path {
		t.Fatalf("unexpected path %q", writeErr.Path)
	}
}

func TestReadMissingFile(t *testing.T) {
	log, err := Read(filepath.Join(t.TempDir(), "none.csv"), testTiers(t))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if log.Exists {
		t.Fatalf("expected Exists=false")
	}
	if len(log.Entries) != 0 || len(log.Totals) != 0 {
		t.Fatalf("expected empty log, got %+v", log)
	}
}

func TestReadSkipsMalformedLines(t *testing.T) {
	content := "2025-03-04,09:00 AM,easy,1\n" +
		"\n" +
		"2025-03-04,10:00 AM,medium,three\n" +
		"2025-03-04,11:00 AM,hard,5\n" +
		"garbage\n" +
		"2025-03-04,23:00,hard,5\n" +
		"2025-13-40,11:00 AM,hard,5\n" +
		"2025-03-05,01:00 PM,medium,3\n"
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	log, err := Read(path, testTiers(t))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(log.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(log.Entries))
	}
	if len(log.Problems) != 4 {
		t.Fatalf("expected 4 problems, got %d: %v", len(log.Problems), log.Problems)
	}
	wantLines := []int{3, 5, 6, 7}
	for i, p := range log.Problems {
		if p.Line != wantLines[i] {
			t.Fatalf("problem %d: expected line %d, got %d", i, wantLines[i], p.Line)
		}
	}
	if log.Totals["2025-03-04"] != 6 || log.Totals["2025-03-05"] != 3 {
		t.Fatalf("unexpected totals %v", log.Totals)
	}
}

func TestReadOneMalformedAmongValid(t *testing.T) {
	const n = 5
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		buf.WriteString("2025-03-04,09:0" + string(rune('0'+i)) + " AM,easy,1\n")
		if i == 2 {
			buf.WriteString("2025-03-04,09:30 AM,easy\n")
		}
	}
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	log, err := Read(path, testTiers(t))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(log.Entries) != n {
		t.Fatalf("expected %d entries, got %d", n, len(log.Entries))
	}
}

func TestParseLineLegacyGlyph(t *testing.T) {
	tiers := testTiers(t)
	entry, perr := ParseLine("2025-03-04,02:15 PM,hard,5,💥", tiers)
	if perr != nil {
		t.Fatalf("parse legacy: %v", perr)
	}
	if entry.Schema != model.SchemaLegacy || entry.Glyph != "💥" {
		t.Fatalf("expected legacy glyph, got %+v", entry)
	}

	entry, perr = ParseLine("2025-03-04, 2:15 pm ,Medium, 3", tiers)
	if perr != nil {
		t.Fatalf("parse current: %v", perr)
	}
	if entry.Schema != model.SchemaCurrent || entry.Glyph != "⚡" || entry.Tier != "medium" {
		t.Fatalf("expected glyph derived from tier, got %+v", entry)
	}

	entry, perr = ParseLine("2025-03-04,02:15 PM,custom,2", tiers)
	if perr != nil {
		t.Fatalf("parse unknown tier: %v", perr)
	}
	if entry.Glyph != "" || entry.Score != 2 {
		t.Fatalf("expected unknown tier kept without glyph, got %+v", entry)
	}
}

func TestReadStripsByteOrderMark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, []byte("\ufeff2025-03-04,09:00 AM,easy,1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	log, err := Read(path, testTiers(t))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(log.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d (%v)", len(log.Entries), log.Problems)
	}
}

func TestRecordRepairsMissingFinalNewline(t *testing.T) {
	tiers := testTiers(t)
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, []byte("2025-03-04,09:00 AM,easy,1"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	rec := NewRecorder(path, tiers).WithClock(fixedClock("2025-03-04 10:00"))
	if _, err := rec.Record("hard"); err != nil {
		t.Fatalf("record: %v", err)
	}
	log, err := Read(path, tiers)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(log.Entries) != 2 || len(log.Problems) != 0 {
		t.Fatalf("expected 2 clean entries, got %d entries and %d problems", len(log.Entries), len(log.Problems))
	}
	if got := log.Totals["2025-03-04"]; got != 6 {
		t.Fatalf("expected total 6, got %d", got)
	}
}

func TestReadSkipsOversizedLine(t *testing.T) {
	tiers := testTiers(t)
	path := filepath.Join(t.TempDir(), "log.csv")
	content := "2025-03-04,09:00 AM,easy,1\n" +
		strings.Repeat("x", 70*1024) + "\n" +
		"2025-03-04,10:00 AM,hard,5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	log, err := Read(path, tiers)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(log.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(log.Entries))
	}
	if len(log.Problems) != 1 || log.Problems[0].Line != 2 || log.Problems[0].Reason != "line too long" {
		t.Fatalf("unexpected problems %v", log.Problems)
	}
	if got := log.Totals["2025-03-04"]; got != 6 {
		t.Fatalf("expected total 6, got %d", got)
	}
}

func TestReadLastLineWithoutNewline(t *testing.T) {
	tiers := testTiers(t)
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, []byte("2025-03-04,09:00 AM,easy,1\n2025-03-04,10:00 AM,medium,3"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	log, err := Read(path, tiers)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(log.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(log.Entries))
	}
}

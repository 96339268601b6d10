// Package stats contains aggregation and reporting helpers.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/didit/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RecentTotals returns at most n of the latest daily totals, oldest first.
func RecentTotals(totals map[string]int, n int) []model.DailyTotal {
	sorted := SortedTotals(totals)
	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// RenderToday prints today's entries, the tier breakdown and a sparkline of
// recent daily totals. width limits the number of sparkline days.
func RenderToday(w io.Writer, today string, entries []model.Entry, totals map[string]int, width int) error {
	todays := EntriesOn(entries, today)
	if _, err := fmt.Fprintf(w, "Today (%s)\n", today); err != nil {
		return err
	}
	if len(todays) == 0 {
		if _, err := fmt.Fprintln(w, "No tasks logged today yet."); err != nil {
			return err
		}
	} else {
		rows := make([][]string, 0, len(todays))
		for _, e := range todays {
			rows = append(rows, []string{e.Time, model.Capitalize(e.Tier), fmt.Sprintf("%d", e.Score), e.Glyph})
		}
		rows = append(rows, []string{"", "Total", fmt.Sprintf("%d", totals[today]), ""})
		for _, line := range FormatTable([]string{"Time", "Level", "Points", ""}, rows, map[int]bool{2: true}) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
		counts := TierCounts(todays)
		countRows := make([][]string, 0, len(counts))
		for _, c := range counts {
			countRows = append(countRows, []string{model.Capitalize(c.Tier), fmt.Sprintf("%d", c.Count), fmt.Sprintf("%d", c.Points)})
		}
		for _, line := range FormatTable([]string{"Level", "Tasks", "Points"}, countRows, map[int]bool{1: true, 2: true}) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	days := width - len("Recent days: ") - 2
	if days < 1 {
		days = 1
	}
	recent := RecentTotals(totals, days)
	if len(recent) == 0 {
		return nil
	}
	values := make([]float64, len(recent))
	for i, dt := range recent {
		values[i] = float64(dt.Total)
	}
	if _, err := fmt.Fprintf(w, "\nRecent days: [%s]\n", Sparkline(values)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s .. %s\n", recent[0].Date, recent[len(recent)-1].Date)
	return err
}

// Package stats contains aggregation and reporting helpers.
package stats

import (
	"sort"

	"github.com/verte-zerg/didit/internal/model"
)

// DailyTotals sums entry scores per date.
func DailyTotals(entries []model.Entry) map[string]int {
	totals := make(map[string]int)
	for _, e := range entries {
		totals[e.Date] += e.Score
	}
	return totals
}

// SortedTotals returns the totals ordered by ascending date.
func SortedTotals(totals map[string]int) []model.DailyTotal {
	out := make([]model.DailyTotal, 0, len(totals))
	for date, total := range totals {
		out = append(out, model.DailyTotal{Date: date, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// SortEntries returns a copy of entries ordered by date, then clock time.
// Clock time is compared numerically so 01:00 PM follows 09:00 AM.
func SortEntries(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Minutes() < out[j].Minutes()
	})
	return out
}

// EntriesOn returns the entries for date ordered by clock time.
func EntriesOn(entries []model.Entry, date string) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return SortEntries(out)
}

// Point is one plotted value on the intraday trend.
type Point struct {
	Hour  float64
	Score int
	Time  string
}

// TrendSeries holds the chronological intraday points and the day's extremes.
type TrendSeries struct {
	Points []Point
	Min    Point
	Max    Point
}

// Empty reports whether there is nothing to plot.
func (t TrendSeries) Empty() bool {
	return len(t.Points) == 0
}

// Trend builds the intraday series for one day's entries. Min and Max use the
// first occurrence in chronological order when several entries tie.
func Trend(entries []model.Entry) TrendSeries {
	sorted := SortEntries(entries)
	var series TrendSeries
	for i, e := range sorted {
		p := Point{Hour: e.Hour(), Score: e.Score, Time: e.Time}
		series.Points = append(series.Points, p)
		if i == 0 || p.Score < series.Min.Score {
			series.Min = p
		}
		if i == 0 || p.Score > series.Max.Score {
			series.Max = p
		}
	}
	return series
}
